package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sdrelay/internal/presentation/cli"
)

func main() {
	// シグナルを受けたら実行中のリクエストを中断する
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()

	os.Exit(code)
}
