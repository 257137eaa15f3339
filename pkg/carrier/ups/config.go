package ups

import (
	"time"

	"github.com/devacc8/cybership-carrier-service/pkg/carrier"
)

// Config holds UPS credentials and endpoints.
type Config struct {
	ClientID       string
	ClientSecret   string
	AccountNumber  string // optional; enables BillShipper payment details
	BaseURL        string
	OAuthURL       string
	Version        string
	TransactionSrc string
	AuthTimeout    time.Duration
	RatingTimeout  time.Duration
}

const (
	defaultBaseURL        = "https://onlinetools.ups.com"
	defaultOAuthURL       = "https://onlinetools.ups.com/security/v1/oauth/token"
	defaultVersion        = "v2409"
	defaultTransactionSrc = "cybership"
	defaultAuthTimeout    = 5 * time.Second
	defaultRatingTimeout  = 10 * time.Second

	// defaultServiceCode is UPS Ground, the fallback for unmapped levels
	// and unknown wire service codes.
	defaultServiceCode = "03"
)

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.OAuthURL == "" {
		c.OAuthURL = defaultOAuthURL
	}
	if c.Version == "" {
		c.Version = defaultVersion
	}
	if c.TransactionSrc == "" {
		c.TransactionSrc = defaultTransactionSrc
	}
	if c.AuthTimeout == 0 {
		c.AuthTimeout = defaultAuthTimeout
	}
	if c.RatingTimeout == 0 {
		c.RatingTimeout = defaultRatingTimeout
	}
}

// UPS API service code -> normalized service level.
var serviceCodeToLevel = map[string]carrier.ServiceLevel{
	"01": carrier.ServiceNextDayAir,
	"02": carrier.ServiceSecondDayAir,
	"03": carrier.ServiceGround,
	"07": carrier.ServiceWorldwideExpress,
	"08": carrier.ServiceWorldwideExpedited,
	"11": carrier.ServiceStandard,
	"12": carrier.ServiceThreeDaySelect,
	"13": carrier.ServiceNextDayAirSaver,
	"14": carrier.ServiceWorldwideExpressPlus,
	"15": carrier.ServiceNextDayAirEarly,
	"59": carrier.ServiceSecondDayAirAM,
	"65": carrier.ServiceSaver,
}

// Normalized service level -> UPS API service code.
var serviceLevelToCode = map[carrier.ServiceLevel]string{
	carrier.ServiceNextDayAir:           "01",
	carrier.ServiceSecondDayAir:         "02",
	carrier.ServiceGround:               "03",
	carrier.ServiceWorldwideExpress:     "07",
	carrier.ServiceWorldwideExpedited:   "08",
	carrier.ServiceStandard:             "11",
	carrier.ServiceThreeDaySelect:       "12",
	carrier.ServiceNextDayAirSaver:      "13",
	carrier.ServiceWorldwideExpressPlus: "14",
	carrier.ServiceNextDayAirEarly:      "15",
	carrier.ServiceSecondDayAirAM:       "59",
	carrier.ServiceSaver:                "65",
}

var serviceNames = map[string]string{
	"01": "UPS Next Day Air",
	"02": "UPS 2nd Day Air",
	"03": "UPS Ground",
	"07": "UPS Worldwide Express",
	"08": "UPS Worldwide Expedited",
	"11": "UPS Standard",
	"12": "UPS 3-Day Select",
	"13": "UPS Next Day Air Saver",
	"14": "UPS Worldwide Express Plus",
	"15": "UPS Next Day Air Early",
	"59": "UPS 2nd Day Air A.M.",
	"65": "UPS Saver",
}
