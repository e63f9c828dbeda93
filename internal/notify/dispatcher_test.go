package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cafe/internal/metrics"
	"cafe/internal/models"
)

type fakeSettings struct {
	settings *models.Settings
	err      error
}

func (f fakeSettings) Load(context.Context) (*models.Settings, error) {
	return f.settings, f.err
}

type recordingSender struct {
	mu     sync.Mutex
	calls  map[string]string
	fail   map[string]error
	panics map[string]bool
}

func (s *recordingSender) SendMessage(_ context.Context, chatID, text string) error {
	if s.panics[chatID] {
		panic("boom")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]string{}
	}
	s.calls[chatID] = text
	return s.fail[chatID]
}

func newTestDispatcher(settings fakeSettings, sender Sender) *Dispatcher {
	log := zap.NewNop()
	return NewDispatcher(NewResolver(settings, log), sender, testFormatter(), log, metrics.NewRegistry())
}

func TestResolverEdgeCases(t *testing.T) {
	log := zap.NewNop()
	ctx := context.Background()

	assert.Empty(t, NewResolver(fakeSettings{}, log).Resolve(ctx))
	assert.Empty(t, NewResolver(fakeSettings{settings: &models.Settings{}}, log).Resolve(ctx))
	assert.Empty(t, NewResolver(fakeSettings{err: errors.New("permission denied")}, log).Resolve(ctx))
	assert.Equal(t, []string{"1", "2"},
		NewResolver(fakeSettings{settings: &models.Settings{RecipientIDs: []string{" 1", "", "2", "1"}}}, log).Resolve(ctx))
}

func TestDispatchWithoutRecipientsMakesNoCalls(t *testing.T) {
	for name, settings := range map[string]fakeSettings{
		"missing document": {},
		"empty list":       {settings: &models.Settings{RecipientIDs: []string{}}},
		"read failure":     {err: errors.New("unreachable")},
	} {
		t.Run(name, func(t *testing.T) {
			sender := &recordingSender{}
			results := newTestDispatcher(settings, sender).Dispatch(context.Background(),
				ReviewRecord{Comment: models.Comment{UserName: "Sara", Rating: 5, Text: "ممتاز"}}, "abc")

			assert.Nil(t, results)
			assert.Empty(t, sender.calls)
		})
	}
}

func TestDispatchToleratesPartialFailure(t *testing.T) {
	sender := &recordingSender{fail: map[string]error{"bad": errors.New("telegram error 500")}}
	d := newTestDispatcher(fakeSettings{settings: &models.Settings{RecipientIDs: []string{"bad", "good"}}}, sender)

	results := d.Dispatch(context.Background(), OrderRecord{Order: deliveryOrder()}, "65f0c0ffee0123456789abcd")

	require.Len(t, results, 2)
	assert.Equal(t, "bad", results[0].Recipient)
	assert.Error(t, results[0].Err)
	assert.Equal(t, "good", results[1].Recipient)
	assert.NoError(t, results[1].Err)

	assert.Contains(t, sender.calls["good"], "رقم الطلب: `6789abcd`")
	assert.Equal(t, sender.calls["good"], sender.calls["bad"], "the message is formatted once for everyone")
}

func TestDispatchSurvivesPanickingSender(t *testing.T) {
	sender := &recordingSender{panics: map[string]bool{"p": true}}
	d := newTestDispatcher(fakeSettings{settings: &models.Settings{RecipientIDs: []string{"p", "ok"}}}, sender)

	results := d.Dispatch(context.Background(), ContactRecord{Message: models.ContactMessage{Name: "a", Message: "b"}}, "id")

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestDispatchIgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var seen error
	sender := senderFunc(func(ctx context.Context, _, _ string) error {
		seen = ctx.Err()
		return nil
	})
	d := newTestDispatcher(fakeSettings{settings: &models.Settings{RecipientIDs: []string{"1"}}}, sender)

	results := d.Dispatch(ctx, ContactRecord{Message: models.ContactMessage{Name: "a", Message: "b"}}, "id")
	require.Len(t, results, 1)
	assert.NoError(t, seen)
}

func TestSendToSkipsResolution(t *testing.T) {
	sender := &recordingSender{fail: map[string]error{"b": errors.New("chat not found")}}
	d := newTestDispatcher(fakeSettings{err: errors.New("must not be read")}, sender)

	results := d.SendTo(context.Background(), OrderRecord{Order: models.Order{Type: models.OrderTypePickup}}, "order-1", []string{"a", "b"})
	require.Len(t, results, 2)
	assert.Equal(t, 1, Failed(results))
	assert.Len(t, sender.calls, 2)
	assert.Nil(t, d.SendTo(context.Background(), OrderRecord{}, "order-1", nil))
}

func TestWelcomeWrapsSendError(t *testing.T) {
	sender := &recordingSender{fail: map[string]error{"9": errors.New("blocked")}}
	d := newTestDispatcher(fakeSettings{}, sender)

	err := d.Welcome(context.Background(), "9", "Sara")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
	assert.Contains(t, sender.calls["9"], "Sara")
}

type senderFunc func(ctx context.Context, chatID, text string) error

func (f senderFunc) SendMessage(ctx context.Context, chatID, text string) error {
	return f(ctx, chatID, text)
}
