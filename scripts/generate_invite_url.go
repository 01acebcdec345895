package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"sdrelay/internal/infrastructure/discord"

	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("警告: .envファイルの読み込みに失敗しました: %v", err)
	}

	user, err := discord.BotUser(context.Background(), os.Getenv("DISCORD_BOT_TOKEN"))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Bot情報:\n")
	fmt.Printf("   名前: %s\n", user.Username)
	fmt.Printf("   Client ID: %s\n", user.ID)
	fmt.Println()

	fmt.Printf("Bot招待URL:\n")
	fmt.Printf("   %s\n", discord.InviteURL(user.ID))
	fmt.Println()

	fmt.Printf("必要な権限:\n")
	fmt.Printf("   - View Channel (1024)\n")
	fmt.Printf("   - Send Messages (2048)\n")
	fmt.Printf("   - Attach Files (32768)\n")
	fmt.Printf("   - 合計: %d\n", discord.RelayPermissions)
	fmt.Println()

	fmt.Printf("使用方法:\n")
	fmt.Printf("   1. 上記のURLから画像を送信したいサーバーにBotを招待\n")
	fmt.Printf("   2. RELAY_MODE=discord を設定\n")
	fmt.Printf("   3. --channel に送信先のチャンネルIDを指定して実行\n")
}
