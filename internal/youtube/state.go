package youtube

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	ErrMissingState    = errors.New("missing state")
	ErrInvalidState    = errors.New("invalid state")
	ErrMissingFilename = errors.New("filename is undefined")
)

// State is the upload context carried through the authorization redirect
// in the OAuth2 `state` parameter. The provider returns it verbatim.
type State struct {
	Filename    string `json:"filename"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s State) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeState parses the raw `state` query value. Malformed input is
// rejected with an error, never a panic.
func DecodeState(raw string) (State, error) {
	var st State
	if raw == "" {
		return st, ErrMissingState
	}
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return State{}, errors.Wrap(ErrInvalidState, err.Error())
	}
	if st.Filename == "" {
		return State{}, ErrMissingFilename
	}
	return st, nil
}
