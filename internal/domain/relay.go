package domain

// RelayActionSend は、メッセージ送信を表すアクション名です
const RelayActionSend = "send"

// RelayMessage は、チャンネルへ中継するメッセージを表す値オブジェクトです
type RelayMessage struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
	Message string `json:"message"`
	Media   string `json:"media,omitempty"`
}

// NewRelayMessage は、送信アクションのRelayMessageを作成します
func NewRelayMessage(channel, message, media string) RelayMessage {
	return RelayMessage{
		Action:  RelayActionSend,
		Channel: channel,
		Message: message,
		Media:   media,
	}
}

// HasMedia は、添付ファイルが指定されているかを判定します
func (m RelayMessage) HasMedia() bool {
	return m.Media != ""
}
