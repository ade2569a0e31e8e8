package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/issue-warden/internal/core"
)

func TestDo(t *testing.T) {
	transient := core.NewError(core.KindTransient, "chat completion", errors.New("503"))
	auth := core.NewError(core.KindAuth, "chat completion", errors.New("401"))

	tests := []struct {
		name         string
		policy       Policy
		failures     []error
		wantCalls    int
		wantErr      error
		wantExhaust  bool
		wantResponse string
	}{
		{
			name:         "succeeds first time",
			policy:       ConstantPolicy("llm", 3, time.Millisecond),
			wantCalls:    1,
			wantResponse: "ok",
		},
		{
			name:         "transient then success",
			policy:       ConstantPolicy("llm", 3, time.Millisecond),
			failures:     []error{transient, transient},
			wantCalls:    3,
			wantResponse: "ok",
		},
		{
			name:        "exhausts attempts",
			policy:      ConstantPolicy("llm", 3, time.Millisecond),
			failures:    []error{transient, transient, transient, transient},
			wantCalls:   3,
			wantErr:     core.ErrTransient,
			wantExhaust: true,
		},
		{
			name:      "permanent error is not retried",
			policy:    ConstantPolicy("llm", 3, time.Millisecond),
			failures:  []error{auth},
			wantCalls: 1,
			wantErr:   core.ErrAuth,
		},
		{
			name:        "single attempt policy",
			policy:      ConstantPolicy("llm", 1, time.Millisecond),
			failures:    []error{transient},
			wantCalls:   1,
			wantErr:     core.ErrTransient,
			wantExhaust: true,
		},
		{
			name: "exponential strategy",
			policy: Policy{
				Name: "llm", MaxAttempts: 4, Delay: time.Millisecond,
				MaxDelay: 2 * time.Millisecond, Strategy: Exponential,
			},
			failures:     []error{transient, transient, transient},
			wantCalls:    4,
			wantResponse: "ok",
		},
		{
			name: "custom retryable",
			policy: Policy{
				Name: "llm", MaxAttempts: 2, Delay: time.Millisecond,
				Retryable: func(error) bool { return true },
			},
			failures:     []error{auth},
			wantCalls:    2,
			wantResponse: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			got, err := Do(context.Background(), nil, tt.policy, func(context.Context) (string, error) {
				calls++
				if calls <= len(tt.failures) {
					return "", tt.failures[calls-1]
				}
				return "ok", nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantExhaust {
					assert.Contains(t, err.Error(), "failed after")
				} else {
					assert.NotContains(t, err.Error(), "failed after")
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResponse, got)
		})
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := Do(ctx, nil, ConstantPolicy("llm", 5, time.Hour), func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, core.NewError(core.KindTransient, "chat completion", errors.New("timeout"))
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
