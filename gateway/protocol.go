package gateway

import (
	"fmt"

	"github.com/goccy/go-json"
)

const (
	messageTypeMove        = "move"
	messageTypeDamage      = "damage"
	messageTypeAction      = "action"
	messageTypeTransaction = "transaction"

	replyTypeRejected       = "rejected"
	replyTypeDamageAdjusted = "damage_adjusted"
	replyTypeBanned         = "banned"
)

// clientMessage is a single inbound gameplay message. A flat envelope:
// the relevant fields depend on the Type.
type clientMessage struct {
	Type string `json:"type"`

	// move
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// damage
	Damage   float64 `json:"damage"`
	TargetID string  `json:"targetId"`

	// action
	Action string `json:"action"`

	// transaction
	Kind          string  `json:"kind"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"txId"`
}

func parseClientMessage(raw []byte) (clientMessage, error) {
	msg := clientMessage{}

	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, fmt.Errorf("cannot parse a message: %w", err)
	}

	switch msg.Type {
	case messageTypeMove, messageTypeDamage, messageTypeAction, messageTypeTransaction:
		return msg, nil
	case "":
		return msg, fmt.Errorf("message type is not defined")
	default:
		return msg, fmt.Errorf("unknown message type %s", msg.Type)
	}
}

// serverMessage is a single outbound message.
type serverMessage struct {
	Type   string  `json:"type"`
	Kind   string  `json:"kind,omitempty"`
	Reason string  `json:"reason,omitempty"`
	Damage float64 `json:"damage,omitempty"`
}

func newRejectedMessage(kind, reason string) serverMessage {
	return serverMessage{
		Type:   replyTypeRejected,
		Kind:   kind,
		Reason: reason,
	}
}

func newDamageAdjustedMessage(damage float64, reason string) serverMessage {
	return serverMessage{
		Type:   replyTypeDamageAdjusted,
		Reason: reason,
		Damage: damage,
	}
}

func newBannedMessage(reason string) serverMessage {
	return serverMessage{
		Type:   replyTypeBanned,
		Reason: reason,
	}
}
