package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/amber/internal/models"
)

type fakePushClient struct {
	sent    []string
	failOn  map[string]error
	lastMsg map[string]string
}

func (c *fakePushClient) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if err, ok := c.failOn[token]; ok {
		return err
	}
	c.sent = append(c.sent, token)
	c.lastMsg = data
	return nil
}

type fakeTokenStore struct {
	tokens  []string
	audited []models.NotificationOutcome
}

func (s *fakeTokenStore) ActiveDeviceTokens(ctx context.Context) ([]string, error) {
	return s.tokens, nil
}

func (s *fakeTokenStore) AppendNotification(ctx context.Context, personID string, outcome models.NotificationOutcome) error {
	s.audited = append(s.audited, outcome)
	return nil
}

func testPerson() *models.MissingPerson {
	return &models.MissingPerson{
		ID:          "case-1",
		Name:        "홍길동",
		Age:         82,
		Location:    "서울특별시 강남구",
		Priority:    models.PriorityHigh,
		RiskFactors: []string{"elderly (80+)", "dementia-related condition"},
		Category:    "dementia_patient",
		Lat:         37.49,
		Lng:         127.02,
	}
}

func TestDispatchAllTargetsSucceed(t *testing.T) {
	client := &fakePushClient{}
	store := &fakeTokenStore{tokens: []string{"tok-a", "tok-b", "tok-c"}}
	d := NewDispatcher(client, store)

	outcome, err := d.Dispatch(context.Background(), testPerson())
	require.NoError(t, err)

	assert.Equal(t, 3, outcome.TargetCount)
	assert.Equal(t, 3, outcome.SuccessCount)
	assert.Empty(t, outcome.Failures)
	assert.False(t, outcome.Simulated)

	require.Len(t, store.audited, 1)
	assert.Equal(t, *outcome, store.audited[0])
}

func TestDispatchPartialFailure(t *testing.T) {
	client := &fakePushClient{failOn: map[string]error{
		"tok-b": errors.New("token not registered"),
	}}
	store := &fakeTokenStore{tokens: []string{"tok-a", "tok-b", "tok-c"}}
	d := NewDispatcher(client, store)

	outcome, err := d.Dispatch(context.Background(), testPerson())
	require.NoError(t, err)

	assert.Equal(t, 3, outcome.TargetCount)
	assert.Equal(t, 2, outcome.SuccessCount)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, 1, outcome.Failures[0].TargetIndex)
	assert.Contains(t, outcome.Failures[0].Reason, "token not registered")

	// The failing target must not stop the remaining sends.
	assert.Equal(t, []string{"tok-a", "tok-c"}, client.sent)
}

func TestDispatchNoTargetsSimulates(t *testing.T) {
	client := &fakePushClient{}
	store := &fakeTokenStore{}
	d := NewDispatcher(client, store)

	outcome, err := d.Dispatch(context.Background(), testPerson())
	require.NoError(t, err)

	assert.True(t, outcome.Simulated)
	assert.Equal(t, 1, outcome.TargetCount)
	assert.Equal(t, 1, outcome.SuccessCount)
	assert.Empty(t, client.sent)

	// Simulated sends still leave an audit entry.
	require.Len(t, store.audited, 1)
	assert.True(t, store.audited[0].Simulated)
}

func TestDispatchPayload(t *testing.T) {
	client := &fakePushClient{}
	store := &fakeTokenStore{tokens: []string{"tok-a"}}
	d := NewDispatcher(client, store)

	_, err := d.Dispatch(context.Background(), testPerson())
	require.NoError(t, err)

	data := client.lastMsg
	assert.Equal(t, "case-1", data["person_id"])
	assert.Equal(t, "82", data["age"])
	assert.Equal(t, "HIGH", data["priority"])
	assert.Equal(t, "#FF3B30", data["color"])
	assert.Contains(t, data["risk_factors"], "dementia-related condition")
}

func TestDispatchMediumPriorityColor(t *testing.T) {
	client := &fakePushClient{}
	store := &fakeTokenStore{tokens: []string{"tok-a"}}
	d := NewDispatcher(client, store)

	person := testPerson()
	person.Priority = models.PriorityMedium

	_, err := d.Dispatch(context.Background(), person)
	require.NoError(t, err)

	assert.Equal(t, "#FF9500", client.lastMsg["color"])
}
