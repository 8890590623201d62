package smtp

import "net/mail"

// parseAddress returns the bare address from "Name <addr>" forms.
func parseAddress(s string) (string, error) {
	a, err := mail.ParseAddress(s)
	if err != nil {
		return "", err
	}
	return a.Address, nil
}
