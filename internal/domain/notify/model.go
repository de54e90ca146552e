package notify

import "strings"

type RegisterTokenInput struct {
	Token string `json:"token"`
}

func (in *RegisterTokenInput) Trim() {
	in.Token = strings.TrimSpace(in.Token)
}
