package wsclient

import (
	"encoding/json"
	"fmt"
)

// Commands sent by the client.
const (
	CmdJoin   = "join"
	CmdCursor = "cursor"
)

// Events pushed by the server.
const (
	EventUserJoined = "USER_JOINED"
	EventUserLeft   = "USER_LEFT"
	EventCursor     = "CURSOR"
)

// User is the public profile of a board member.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// CursorPos is a pointer position in world space.
type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Cursor is a peer's pointer position as broadcast by the server.
type Cursor struct {
	UserID   int64   `json:"user_id"`
	UserName string  `json:"user_name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// OnlineUser is one entry of a join reply's roster.
type OnlineUser struct {
	User   User       `json:"user"`
	Cursor *CursorPos `json:"cursor,omitempty"`
}

// JoinRequest is the payload of the join command.
type JoinRequest struct {
	BoardSlugID   string `json:"board_slug_id"`
	UserAuthToken string `json:"user_auth_token"`
}

// JoinResponse is the result of a successful join.
type JoinResponse struct {
	OnlineUsers []OnlineUser `json:"online_users"`
}

// outbound is the envelope of every client frame.
type outbound struct {
	Type string `json:"type"`
	Data any    `json:"data"`
	ID   string `json:"id"`
}

// inbound holds the routing fields of a server frame.
type inbound struct {
	ReplyTo string          `json:"reply_to"`
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data"`
}

// Event is a server push that is not a reply.
type Event struct {
	Name string
	Data json.RawMessage
}

// User decodes the user of a USER_JOINED or USER_LEFT event.
func (e Event) User() (User, error) {
	var payload struct {
		User User `json:"user"`
	}
	if err := json.Unmarshal(e.Data, &payload); err != nil {
		return User{}, fmt.Errorf("decode %s: %w", e.Name, err)
	}
	return payload.User, nil
}

// Cursor decodes the cursor of a CURSOR event.
func (e Event) Cursor() (Cursor, error) {
	var payload struct {
		Cursor Cursor `json:"cursor"`
	}
	if err := json.Unmarshal(e.Data, &payload); err != nil {
		return Cursor{}, fmt.Errorf("decode %s: %w", e.Name, err)
	}
	return payload.Cursor, nil
}

// Reply is a server frame answering a request.
//
// Results are keyed by command name. The server nests them under "data"
// ({reply_to, data: {join: ...}}); a flat form ({reply_to, join: ...}) is
// accepted as well.
type Reply struct {
	ReplyTo string
	fields  map[string]json.RawMessage
	data    map[string]json.RawMessage
}

func parseReply(raw []byte) (*Reply, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	r := &Reply{fields: fields}
	if v, ok := fields["reply_to"]; ok {
		if err := json.Unmarshal(v, &r.ReplyTo); err != nil {
			return nil, fmt.Errorf("decode reply_to: %w", err)
		}
	}
	if v, ok := fields["data"]; ok {
		// data may be a non-object; only object payloads carry results.
		_ = json.Unmarshal(v, &r.data)
	}
	return r, nil
}

func (r *Reply) lookup(name string) (json.RawMessage, bool) {
	if v, ok := r.fields[name]; ok && !isNull(v) {
		return v, true
	}
	if v, ok := r.data[name]; ok && !isNull(v) {
		return v, true
	}
	return nil, false
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null"
}

// Has reports whether the reply carries a result named name.
func (r *Reply) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Err returns the reply's error as a *ServerError, or nil.
func (r *Reply) Err() error {
	v, ok := r.lookup("error")
	if !ok {
		return nil
	}
	se := &ServerError{}
	if err := json.Unmarshal(v, se); err != nil {
		return fmt.Errorf("decode error reply: %w", err)
	}
	return se
}

// Decode unmarshals the result named name into v.
func (r *Reply) Decode(name string, v any) error {
	raw, ok := r.lookup(name)
	if !ok {
		return fmt.Errorf("reply %s has no %q result", r.ReplyTo, name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s result: %w", name, err)
	}
	return nil
}
