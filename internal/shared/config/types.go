package config

import "fmt"

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// GetAddr returns the server address in host:port format
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// DatabaseConfig holds database connection configuration.
// Driver selects mysql or sqlite; for sqlite only Database (the file
// path, or ":memory:") is used.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// DwollaConfig holds the Dwolla off-site gateway credentials and
// feature flags. These mirror the options of the Dwolla application
// registered for the event.
type DwollaConfig struct {
	DestinationID            string `mapstructure:"destination_id" validate:"required"`
	APIKey                   string `mapstructure:"api_key" validate:"required"`
	APISecret                string `mapstructure:"api_secret" validate:"required"`
	OAuthToken               string `mapstructure:"oauth_token"`
	PIN                      string `mapstructure:"pin"`
	AssumeCosts              bool   `mapstructure:"assume_costs"`
	AllowFundingSources      bool   `mapstructure:"allow_funding_sources"`
	AllowGuestCheckout       bool   `mapstructure:"allow_guest_checkout"`
	AdditionalFundingSources bool   `mapstructure:"additional_funding_sources"`
	RefundsSource            string `mapstructure:"refunds_source"`
	Sandbox                  bool   `mapstructure:"sandbox"`
	Test                     bool   `mapstructure:"test"`
}

// TicketsConfig holds the host ticketing application's settings the
// gateway needs to build redirect/callback URLs and checkout items.
type TicketsConfig struct {
	// BaseURL is the externally reachable base URL of this service,
	// used as the root for the callback/redirect/notify URLs handed
	// to Dwolla and for the attendee access page.
	BaseURL   string `mapstructure:"base_url" validate:"required,url"`
	EventName string `mapstructure:"event_name"`
	Currency  string `mapstructure:"currency" validate:"required"`
}

// EmailConfig holds SMTP settings for receipt emails. Optional: with
// an empty host, receipt sending is disabled.
type EmailConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}
