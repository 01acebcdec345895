package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"sdrelay/configs"
	"sdrelay/internal/domain"
	"sdrelay/pkg/logger"

	"github.com/spf13/cobra"
)

// errUsage は、使い方を表示して終了する場合のエラーです
var errUsage = errors.New("usage")

// negativeNumber は、位置引数として扱う負の整数（例: シードの-1）にマッチします
var negativeNumber = regexp.MustCompile(`^-\d+$`)

// App は、コマンドが利用する依存関係をまとめたものです
type App struct {
	LoadConfig     func(envFile string) (*configs.Config, error)
	BuildGenerator func(ctx context.Context, cfg *configs.Config, relayMode string) (Generator, error)
}

// DefaultApp は、本番用の依存関係を持つAppを返します
func DefaultApp() *App {
	return &App{
		LoadConfig:     configs.LoadConfig,
		BuildGenerator: BuildGenerator,
	}
}

type options struct {
	loras     []string
	strength  float64
	index     int
	channel   string
	relayMode string
	seed      int64
	envFile   string
}

// NewRootCommand は、ルートコマンドを作成します
func NewRootCommand(app *App) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "sdrelay <prompt> [seed]",
		Short: "Stable Diffusion の img2img で画像を生成し、チャンネルへ送信します",
		Long: `参照画像とプロンプトから Stable Diffusion WebUI の img2img で画像を1枚生成して保存し、
チャンネルが指定されていれば OpenClaw 経由で送信します。

Examples:
  sdrelay "换成红色衣服"
  sdrelay "换成红色衣服" 12345
  sdrelay "换成红色衣服" -1        (シード-1はWebUI側でランダム)
  sdrelay "red dress" --lora detail:0.6 --lora film:0.3 --strength 0.7 --channel general`,
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&opts.loras, "lora", nil, "LoRAタグ (名前:重み)。最大3つまで指定可能")
	flags.Float64Var(&opts.strength, "strength", domain.DefaultDenoisingStrength, "デノイズ強度 (0〜1)")
	flags.IntVar(&opts.index, "index", 0, "出力ファイルの番号 ({index}.png)")
	flags.StringVar(&opts.channel, "channel", "", "送信先チャンネル。指定しない場合は送信しない")
	flags.StringVar(&opts.relayMode, "relay-mode", "", "送信方式 (cli, http, discord)。省略時は RELAY_MODE")
	flags.Int64Var(&opts.seed, "seed", 0, "シード。位置引数より優先")
	flags.StringVar(&opts.envFile, "env-file", "", "読み込む.envファイル")

	return cmd
}

func run(cmd *cobra.Command, app *App, opts *options, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return errUsage
	}

	params, err := buildParams(cmd, opts, args)
	if err != nil {
		return err
	}

	cfg, err := app.LoadConfig(opts.envFile)
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	if err := logger.InitWithOutput(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("ロガーの初期化に失敗: %w", err)
	}

	params.ReferenceImagePath = cfg.Storage.ReferenceImagePath
	request, err := domain.NewGenerationRequest(params)
	if err != nil {
		return err
	}

	relayMode := ""
	if request.HasChannel() {
		relayMode = cfg.Relay.Mode
		if opts.relayMode != "" {
			relayMode = strings.ToLower(opts.relayMode)
		}
	}

	generator, err := app.BuildGenerator(cmd.Context(), cfg, relayMode)
	if err != nil {
		return err
	}

	output, err := generator.Generate(cmd.Context(), request)
	if output != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "\n--- Result ---\nImage saved to: %s\n", output.Path)
	}
	return err
}

// buildParams は、位置引数とフラグから生成パラメータを組み立てます
func buildParams(cmd *cobra.Command, opts *options, args []string) (domain.GenerationParams, error) {
	params := domain.GenerationParams{
		Prompt:            args[0],
		DenoisingStrength: opts.strength,
		OutputIndex:       opts.index,
		Channel:           opts.channel,
	}

	switch {
	case cmd.Flags().Changed("seed"):
		seed := opts.seed
		params.Seed = &seed
	case len(args) > 1:
		seed, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return params, fmt.Errorf("シードは整数である必要があります: %s", args[1])
		}
		params.Seed = &seed
	}

	tags := make([]domain.StyleTag, 0, len(opts.loras))
	for _, value := range opts.loras {
		tag, err := domain.ParseStyleTag(value)
		if err != nil {
			return params, err
		}
		tags = append(tags, tag)
	}

	set, err := domain.NewStyleTagSet(tags...)
	if err != nil {
		return params, err
	}
	params.StyleTags = set

	return params, nil
}

// separateNegativeArgs は、負の整数の位置引数をフラグと解釈されないよう "--" の後ろへ移します
// フラグの値として渡された負の数（--seed -1 など）はそのまま残します
func separateNegativeArgs(args []string) []string {
	normal := make([]string, 0, len(args)+1)
	var negatives, rest []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			rest = args[i+1:]
			i = len(args)
		case strings.HasPrefix(arg, "--") && !strings.Contains(arg, "=") && arg != "--help":
			normal = append(normal, arg)
			if i+1 < len(args) {
				i++
				normal = append(normal, args[i])
			}
		case negativeNumber.MatchString(arg):
			negatives = append(negatives, arg)
		default:
			normal = append(normal, arg)
		}
	}

	if len(negatives) == 0 && rest == nil {
		return normal
	}
	normal = append(normal, "--")
	normal = append(normal, negatives...)
	return append(normal, rest...)
}

// Execute は、コマンドを実行して終了コードを返します
func Execute(ctx context.Context) int {
	return ExecuteWith(ctx, DefaultApp(), os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteWith は、依存関係と入出力を指定してコマンドを実行します
func ExecuteWith(ctx context.Context, app *App, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(app)
	cmd.SetArgs(separateNegativeArgs(args))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "[ERROR] %s\n", err.Error())
		}
		return 1
	}
	return 0
}
