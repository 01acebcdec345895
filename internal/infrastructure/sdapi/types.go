package sdapi

// img2img リクエストの固定パラメータ
const (
	Img2ImgPath = "/sdapi/v1/img2img"

	DefaultSteps           = 25
	DefaultCFGScale        = 7
	DefaultWidth           = 512
	DefaultHeight          = 768
	DefaultModelCheckpoint = "realisticVisionV60B1"
	DefaultNegativePrompt  = "nsfw,blurry,bad anatomy,low quality,worst quality,normal quality"

	FaceIDModule = "ip-adapter_face_id_plus"
	FaceIDModel  = "ip-adapter-faceid-plusv2_sd15"
)

// Img2ImgPayload は、/sdapi/v1/img2img に送信するリクエストボディです
type Img2ImgPayload struct {
	InitImages        []string       `json:"init_images"`
	Prompt            string         `json:"prompt"`
	BatchSize         int            `json:"batch_size"`
	Steps             int            `json:"steps"`
	DenoisingStrength float64        `json:"denoising_strength"`
	CFGScale          float64        `json:"cfg_scale"`
	Width             int            `json:"width"`
	Height            int            `json:"height"`
	Seed              int64          `json:"seed"`
	RestoreFaces      bool           `json:"restore_faces"`
	ModelCheckpoint   string         `json:"sd_model_checkpoint"`
	NegativePrompt    string         `json:"negative_prompt"`
	AlwaysOnScripts   AlwaysOnScript `json:"alwayson_scripts"`
}

// AlwaysOnScript は、常時有効にする拡張スクリプトの設定です
type AlwaysOnScript struct {
	ControlNet ControlNet `json:"ControlNet"`
}

// ControlNet は、ControlNet拡張に渡すユニットの一覧です
type ControlNet struct {
	Args []ControlNetUnit `json:"args"`
}

// ControlNetUnit は、ControlNetの1ユニット分の設定です
type ControlNetUnit struct {
	Enabled      bool    `json:"enabled"`
	PixelPerfect bool    `json:"pixel_perfect"`
	Module       string  `json:"module"`
	Model        string  `json:"model"`
	Weight       float64 `json:"weight"`
	Image        string  `json:"image"`
}
