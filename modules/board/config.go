package board

// Config controls the board HTTP module.
type Config struct {
	SubmitRatePerSec float64 `env:"BOARD_SUBMIT_RATE_PER_SEC" envDefault:"10"`
	SubmitBurst      int     `env:"BOARD_SUBMIT_BURST" envDefault:"20"`
	DatastarScript   string  `env:"BOARD_DATASTAR_SCRIPT" envDefault:"https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"`
	ErrorPreset      string  `env:"BOARD_ERROR_PRESET" envDefault:"error"`

	// Error toasts raised for failed DataStar requests are limited separately
	// from submissions.
	NoticeRatePerSec float64 `env:"BOARD_NOTICE_RATE_PER_SEC" envDefault:"1"`
	NoticeBurst      int     `env:"BOARD_NOTICE_BURST" envDefault:"3"`

	// AuthSecret enables HS256 bearer tokens on the submit and control
	// endpoints. Dismissing a single toast stays open for the page itself.
	AuthSecret string `env:"BOARD_AUTH_SECRET"`
}
