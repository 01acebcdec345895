package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// RelayPermissions は、画像を中継するBotに必要な権限です
// View Channel (1024) + Send Messages (2048) + Attach Files (32768)
const RelayPermissions = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionAttachFiles

// InviteURL は、中継用Botをサーバーに招待するためのURLを返します
func InviteURL(clientID string) string {
	return fmt.Sprintf("https://discord.com/api/oauth2/authorize?client_id=%s&permissions=%d&scope=bot", clientID, RelayPermissions)
}

// BotUser は、Botトークンに対応するユーザー情報を取得します
func BotUser(ctx context.Context, botToken string) (*discordgo.User, error) {
	if botToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN が設定されていません")
	}

	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("Discordセッションの作成に失敗: %w", err)
	}

	user, err := session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("Bot情報の取得に失敗: %w", err)
	}
	return user, nil
}
