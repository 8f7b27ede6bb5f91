package bridge

// Inbound message types sent by the browser renderer.
const (
	MessageReady    = "ready"
	MessageFinished = "finished"
	MessageClick    = "click"
	MessageChat     = "chat"
	MessagePlay     = "play"
)

// Outbound message types sent to the browser renderer.
const (
	MessageCrossFade = "crossFade"
	MessageSay       = "say"
)

// ClipInfo describes one clip of the model the browser has loaded.
type ClipInfo struct {
	Name     string  `json:"name"`
	Duration float32 `json:"duration"`
}

// clientMessage is any message from the browser. Fields not used by a type are empty.
type clientMessage struct {
	Type  string     `json:"type"`
	Clips []ClipInfo `json:"clips,omitempty"`
	Clip  string     `json:"clip,omitempty"`
	Text  string     `json:"text,omitempty"`
}

// serverMessage is any message to the browser.
type serverMessage struct {
	Type     string  `json:"type"`
	Clip     string  `json:"clip,omitempty"`
	Duration float32 `json:"duration"`
	Text     string  `json:"text,omitempty"`
}
