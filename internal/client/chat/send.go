package chat

import "strings"

//go:generate mockgen -source=send.go -destination=../../mocks/mock_sender.go -package=mocks

// Sender transmits one raw text frame
type Sender interface {
	SendText(text string) error
}

// Submit applies the send rule to the current input field.
// Blank input is returned unchanged and nothing is sent. Otherwise the trimmed
// text goes out as-is and the field comes back empty, even if sending failed.
func Submit(input string, s Sender) (string, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return input, nil
	}
	return "", s.SendText(text)
}
