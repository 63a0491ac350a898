package film

import (
	"encoding/json"
	"fmt"
	"io"
)

// Response is the single json object a run emits. Location is null when the
// lookup failed and the run was not strict about it.
type Response struct {
	Endpoint    string  `json:"endpoint"`
	Credentials string  `json:"credentials"`
	Username    string  `json:"username"`
	Location    *string `json:"location"`
	Films       []*Film `json:"films"`
	Probe       *Probe  `json:"probe,omitempty"`
}

func (r *Response) JSON() ([]byte, error) {
	films := r.Films
	if films == nil {
		films = []*Film{}
	}
	resp := *r
	resp.Films = films
	return json.Marshal(&resp)
}

func (r *Response) Emit(w io.Writer) error {
	data, err := r.JSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
