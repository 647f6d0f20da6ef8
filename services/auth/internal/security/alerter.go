package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var alertCounterScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Auth events tracked for alerting.
const (
	EventLogin    = "auth.login"
	EventRegister = "auth.register"

	OutcomeFail        = "fail"
	OutcomeRateLimited = "rate_limited"
)

// AlertResult is the outcome of one observation.
type AlertResult struct {
	Triggered bool
	Count     int64
	Threshold int64
	Window    time.Duration
}

// AuditAlerter counts failed auth attempts per client IP and reports when a
// threshold is crossed inside its window.
type AuditAlerter struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewAuditAlerter returns nil when client is nil; a nil alerter observes nothing.
func NewAuditAlerter(client *redis.Client, prefix string) *AuditAlerter {
	if client == nil {
		return nil
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "jobboard:auth:alerts"
	}
	return &AuditAlerter{client: client, prefix: prefix, now: time.Now}
}

// Observe records one event. Events without a rule are ignored.
func (a *AuditAlerter) Observe(ctx context.Context, event, outcome, ip string) (AlertResult, error) {
	if a == nil {
		return AlertResult{}, nil
	}
	threshold, window, ok := alertRule(event, outcome)
	if !ok {
		return AlertResult{}, nil
	}
	windowMs := window.Milliseconds()
	slot := a.now().UTC().UnixMilli() / windowMs
	key := fmt.Sprintf("%s:%s:%s:%s:%d", a.prefix, segment(event), segment(outcome), segment(ip), slot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	count, err := alertCounterScript.Run(ctx, a.client, []string{key}, windowMs).Int64()
	if err != nil {
		return AlertResult{}, err
	}
	return AlertResult{
		Triggered: count >= threshold,
		Count:     count,
		Threshold: threshold,
		Window:    window,
	}, nil
}

func alertRule(event, outcome string) (int64, time.Duration, bool) {
	switch {
	case outcome == OutcomeRateLimited:
		return 20, time.Minute, true
	case outcome != OutcomeFail:
		return 0, 0, false
	case event == EventLogin:
		return 10, 5 * time.Minute, true
	case event == EventRegister:
		return 10, 5 * time.Minute, true
	default:
		return 0, 0, false
	}
}

func segment(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return "unknown"
	}
	return strings.NewReplacer(":", "_", "|", "_", " ", "_").Replace(in)
}
