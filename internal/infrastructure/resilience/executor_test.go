package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

func TestExecuteMakesSingleAttempt(t *testing.T) {
	exec := NewExecutor(Config{Enabled: false})

	attempts := 0
	errTemp := errors.New("temporary")
	err := exec.Execute(context.Background(), "chat_openai", func(context.Context) error {
		attempts++
		return errTemp
	}, ProviderFault)
	if !errors.Is(err, errTemp) {
		t.Fatalf("expected temporary error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}

func TestExecuteSkipsCanceledContext(t *testing.T) {
	exec := NewExecutor(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := exec.Execute(ctx, "news_search", func(context.Context) error {
		t.Fatalf("callback must not run on a canceled context")
		return nil
	}, ProviderFault)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExecuteOpensCircuitAfterFailures(t *testing.T) {
	exec := NewExecutor(Config{
		Enabled:          true,
		MinRequests:      2,
		FailureRatio:     0.5,
		OpenTimeout:      50 * time.Millisecond,
		HalfOpenMaxCalls: 1,
	})

	var transitions []string
	exec.SetStateObserver(func(operation, from, to string) {
		transitions = append(transitions, operation+":"+from+"->"+to)
	})

	outage := &domain.ProviderFailure{StatusCode: 503, Message: "overloaded"}
	for i := 0; i < 2; i++ {
		err := exec.Execute(context.Background(), "chat_groq", func(context.Context) error {
			return outage
		}, ProviderFault)
		if !errors.Is(err, outage) {
			t.Fatalf("expected upstream failure on iteration %d, got %v", i, err)
		}
	}

	err := exec.Execute(context.Background(), "chat_groq", func(context.Context) error {
		t.Fatalf("circuit should be open and must not call operation")
		return nil
	}, ProviderFault)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open state error, got %v", err)
	}
	if !IsCircuitOpen(err) {
		t.Fatalf("IsCircuitOpen() must recognise %v", err)
	}
	if len(transitions) != 1 || transitions[0] != "chat_groq:closed->open" {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
}

func TestExecuteKeepsCircuitClosedOnQuotaFailures(t *testing.T) {
	exec := NewExecutor(Config{
		Enabled:      true,
		MinRequests:  2,
		FailureRatio: 0.5,
		OpenTimeout:  time.Minute,
	})

	quota := &domain.ProviderFailure{StatusCode: 429, Message: "You exceeded your current quota"}
	for i := 0; i < 20; i++ {
		calls := 0
		err := exec.Execute(context.Background(), "chat_openai", func(context.Context) error {
			calls++
			return quota
		}, ProviderFault)
		if calls != 1 {
			t.Fatalf("call %d: expected upstream to be reached, breaker rejected it: %v", i, err)
		}
		if !errors.Is(err, quota) {
			t.Fatalf("call %d: expected quota failure, got %v", i, err)
		}
	}
}

func TestExecuteRejectsNilCallback(t *testing.T) {
	exec := NewExecutor(DefaultConfig())
	if err := exec.Execute(context.Background(), "op", nil, nil); err == nil {
		t.Fatalf("expected error for nil callback")
	}
}
