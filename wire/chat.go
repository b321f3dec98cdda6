package wire

import (
	"github.com/anirudhraja/proxywire/chat"
)

// ChatPositionChat is the position byte that places a message in the chat box.
const ChatPositionChat byte = 0

// EncodeChat writes t as a length-prefixed JSON string.
func (e *Encoder) EncodeChat(t *chat.Text) error {
	s, err := t.ToJSON()
	if err != nil {
		return err
	}
	e.EncodeString(s)
	return nil
}

// EncodeChatString writes s as the JSON object {"text": s}.
func (e *Encoder) EncodeChatString(s string) error {
	return e.EncodeChat(chat.Plain(s))
}

// EncodeChatMessage writes t followed by the chat box position byte.
func (e *Encoder) EncodeChatMessage(t *chat.Text) error {
	if err := e.EncodeChat(t); err != nil {
		return err
	}
	e.EncodeUByte(ChatPositionChat)
	return nil
}

// DecodeChat reads a JSON chat string into a text tree. String, array and
// object shaped JSON are all accepted.
func (d *Decoder) DecodeChat() (*chat.Text, error) {
	s, err := d.DecodeString()
	if err != nil {
		return nil, err
	}
	return chat.Parse([]byte(s))
}

// DecodeChatPlain reads a JSON chat string and returns only its text, with
// formatting codes removed.
func (d *Decoder) DecodeChatPlain() (string, error) {
	t, err := d.DecodeChat()
	if err != nil {
		return "", err
	}
	return t.String(), nil
}
