package line

// Message is a single Messaging API message object.  Helpers below build
// the two shapes this service sends: plain text and a buttons template.
type Message map[string]interface{}

// Action is a template action, e.g. a URI button.
type Action map[string]interface{}

// Text builds a plain text message.
func Text(text string) Message {
	return Message{"type": "text", "text": text}
}

// URIAction builds a button that opens a link.
func URIAction(label, uri string) Action {
	return Action{"type": "uri", "label": label, "uri": uri}
}

// Buttons builds a buttons-template message.  altText is shown in chat
// lists and on clients that cannot render templates.
func Buttons(altText, title, text string, actions ...Action) Message {
	return Message{
		"type":    "template",
		"altText": altText,
		"template": map[string]interface{}{
			"type":    "buttons",
			"title":   title,
			"text":    text,
			"actions": actions,
		},
	}
}
