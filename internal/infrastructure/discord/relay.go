package discord

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"sdrelay/internal/domain"
	"sdrelay/pkg/logger"

	"github.com/bwmarrin/discordgo"
)

// DiscordMessageLimit は、Discordのメッセージ文字数制限です
const DiscordMessageLimit = 2000

// messageSender は、discordgo.Session のうちメッセージ送信に使うメソッドだけを抜き出したインターフェースです
type messageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Relay は、Discordのチャンネルへ画像を添付して送信するRelayです
// チャンネルにはDiscordのチャンネルIDを指定します
type Relay struct {
	session messageSender
}

// NewRelay は、Botトークンから新しいRelayインスタンスを作成します
// REST APIのみを使うため、ゲートウェイ接続（session.Open）は行いません
func NewRelay(botToken string) (*Relay, error) {
	if botToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN が設定されていません")
	}

	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("Discordセッションの作成に失敗: %w", err)
	}

	return &Relay{session: session}, nil
}

// Send は、キャプションと添付画像をチャンネルに送信します
func (r *Relay) Send(ctx context.Context, message domain.RelayMessage) error {
	send := &discordgo.MessageSend{
		Content: truncateContent(message.Message),
	}

	if message.HasMedia() {
		file, err := os.Open(message.Media)
		if err != nil {
			return fmt.Errorf("%w: 添付ファイルを開けません: %v", domain.ErrRelay, err)
		}
		defer file.Close()

		send.Files = []*discordgo.File{{
			Name:        filepath.Base(message.Media),
			ContentType: contentTypeFor(message.Media),
			Reader:      file,
		}}
	}

	logger.Debugf("Discordチャンネルへ送信中: %s", message.Channel)

	if _, err := r.session.ChannelMessageSendComplex(message.Channel, send, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRelay, err)
	}

	return nil
}

// truncateContent は、Discordの文字数制限に収まるように本文を切り詰めます
func truncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= DiscordMessageLimit {
		return content
	}
	logger.Warnf("本文が%d文字を超えたため切り詰めます: %d文字", DiscordMessageLimit, len(runes))
	return string(runes[:DiscordMessageLimit-3]) + "..."
}

func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
