package relay

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"sdrelay/internal/domain"
	"sdrelay/pkg/logger"
)

// CommandRunner は、外部コマンドを実行して結合出力を返す関数です
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// execRunner は、シェルを介さずに引数をそのまま渡してコマンドを実行します
func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// CLIRelay は、openclaw CLI を起動してメッセージを送信するRelayです
type CLIRelay struct {
	cliPath string
	run     CommandRunner
}

// NewCLIRelay は新しいCLIRelayインスタンスを作成します
func NewCLIRelay(cliPath string) *CLIRelay {
	return &CLIRelay{
		cliPath: cliPath,
		run:     execRunner,
	}
}

// BuildArgs は、openclaw CLI に渡す引数リストを組み立てます
// 値は1要素ずつ渡すため、引用符やシェルのメタ文字を含んでいてもそのまま届きます
func BuildArgs(message domain.RelayMessage) []string {
	args := []string{
		"message", "send",
		"--action", message.Action,
		"--channel", message.Channel,
		"--message", message.Message,
	}
	if message.HasMedia() {
		args = append(args, "--media", message.Media)
	}
	return args
}

// Send は、openclaw CLI を実行してメッセージを送信します
func (r *CLIRelay) Send(ctx context.Context, message domain.RelayMessage) error {
	args := BuildArgs(message)
	logger.Debugf("openclaw CLIを実行中: %s %s", r.cliPath, strings.Join(args, " "))

	output, err := r.run(ctx, r.cliPath, args...)
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			return fmt.Errorf("%w: %v", domain.ErrRelay, err)
		}
		return fmt.Errorf("%w: %v: %s", domain.ErrRelay, err, detail)
	}

	return nil
}
