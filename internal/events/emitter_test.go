package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	subject string
	data    []byte
}

type recordingPublisher struct {
	messages []message
	err      error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, message{subject: subject, data: data})
	return nil
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "pools.spin.result", Subject("pools", SpinResult))
	assert.Equal(t, "spin.result", Subject("", SpinResult))
}

func TestNATSEmitter_Emit(t *testing.T) {
	pub := &recordingPublisher{}
	e := NewPublisherEmitter(pub, "prize_pool")

	err := e.Emit(context.Background(), Event{
		Type:   SpinResult,
		PoolID: 7,
		Data:   SpinResultData{TicketID: "abc", ItemIndex: 2, ItemName: "MacBook", ItemValue: 200, Seed: 99},
	})
	require.NoError(t, err)
	require.Len(t, pub.messages, 1)
	assert.Equal(t, "prize_pool.spin.result", pub.messages[0].subject)

	var decoded struct {
		Type      string         `json:"type"`
		PoolID    int64          `json:"pool_id"`
		Data      SpinResultData `json:"data"`
		Timestamp int64          `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(pub.messages[0].data, &decoded))
	assert.Equal(t, SpinResult, decoded.Type)
	assert.Equal(t, int64(7), decoded.PoolID)
	assert.Equal(t, "MacBook", decoded.Data.ItemName)
	assert.NotZero(t, decoded.Timestamp)
}

func TestNATSEmitter_PublishError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("connection closed")}
	e := NewPublisherEmitter(pub, "prize_pool")

	err := e.Emit(context.Background(), Event{Type: FundsWithdrawn})
	assert.EqualError(t, err, "connection closed")
	e.Close()
}

func TestProbabilityAnalysisData_NullFields(t *testing.T) {
	data, err := json.Marshal(ProbabilityAnalysisData{ItemName: "ghost", Value: 500})
	require.NoError(t, err)
	assert.JSONEq(t, `{"item_name":"ghost","value":500,"probability":0,
		"expected_spins":null,"expected_cost":null,"profit":null,"profit_ratio":null}`, string(data))
}

func TestNoopEmitter(t *testing.T) {
	e := NewNoopEmitter()
	assert.NoError(t, e.Emit(context.Background(), Event{Type: PoolInitialized}))
	e.Close()
}
