package security

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newAlerter(t *testing.T) *AuditAlerter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewAuditAlerter(client, "test:alerts")
}

func TestAuditAlerterTriggersOnRepeatedLoginFailures(t *testing.T) {
	alerter := newAlerter(t)
	ctx := context.Background()
	for i := 1; i <= 10; i++ {
		result, err := alerter.Observe(ctx, EventLogin, OutcomeFail, "203.0.113.4")
		if err != nil {
			t.Fatalf("observe: %v", err)
		}
		if i < 10 && result.Triggered {
			t.Fatalf("triggered early at attempt %d", i)
		}
		if i == 10 && !result.Triggered {
			t.Fatalf("expected alert at attempt 10, count %d", result.Count)
		}
	}
	other, err := alerter.Observe(ctx, EventLogin, OutcomeFail, "203.0.113.5")
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	if other.Count != 1 {
		t.Fatalf("expected per-ip counters, got count %d", other.Count)
	}
}

func TestAuditAlerterIgnoresSuccessAndUnknownEvents(t *testing.T) {
	alerter := newAlerter(t)
	for _, tc := range [][2]string{{EventLogin, "success"}, {"auth.custom", OutcomeFail}} {
		result, err := alerter.Observe(context.Background(), tc[0], tc[1], "127.0.0.1")
		if err != nil {
			t.Fatalf("observe: %v", err)
		}
		if result.Triggered || result.Count != 0 {
			t.Fatalf("unexpected observation for %v: %+v", tc, result)
		}
	}
}

func TestNilAlerterIsNoop(t *testing.T) {
	var alerter *AuditAlerter
	if NewAuditAlerter(nil, "") != nil {
		t.Fatalf("expected nil alerter without client")
	}
	if _, err := alerter.Observe(context.Background(), EventLogin, OutcomeFail, "ip"); err != nil {
		t.Fatalf("nil alerter should not fail: %v", err)
	}
}
