package constants

const (
	MessageTypeNormal = "NORMAL"
	MessageTypeTask   = "TASK"
	MessageTypeImage  = "IMAGE"
	MessageTypeFile   = "FILE"
)

func IsMessageType(t string) bool {
	switch t {
	case MessageTypeNormal, MessageTypeTask, MessageTypeImage, MessageTypeFile:
		return true
	}
	return false
}
