// Package config reads the yaml profile file. The file holds one section
// per environment; env picks the active one.
package config

type ProxyConfig struct {
	Mode               string   `yaml:"mode"` // disabled|list|rotation
	List               []string `yaml:"list"`
	RotationURL        string   `yaml:"rotation_url"`
	RotationTTLSeconds int      `yaml:"rotation_ttl_seconds"`
	FailOpen           bool     `yaml:"fail_open"`
}

func (px ProxyConfig) empty() bool {
	return px.Mode == "" && len(px.List) == 0 && px.RotationURL == ""
}

type File struct {
	Env   string      `yaml:"env"`
	Proxy ProxyConfig `yaml:"proxy"` // shared by every env without its own
	Local Config      `yaml:"local"`
	Dev   Config      `yaml:"dev"`
	Prod  Config      `yaml:"prod"`
}

type Log struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"` // text|json
	AddSource bool   `yaml:"add_source"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Cornershop struct {
	BaseURL    string `yaml:"base_url"`
	WebURL     string `yaml:"web_url"`
	Address    string `yaml:"address"`
	Country    string `yaml:"country"`
	Language   string `yaml:"language"`
	BusinessID string `yaml:"business_id"`
}

type Traversal struct {
	DelayMS int `yaml:"delay_ms"`
}

type Export struct {
	Format       string   `yaml:"format"`
	Dir          string   `yaml:"dir"`
	Headers      []string `yaml:"headers"` // field or field:label
	ImageDir     string   `yaml:"image_dir"`
	ImageDelayMS int      `yaml:"image_delay_ms"`
	Force        bool     `yaml:"force"`
}

type HTTP struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	Retries        int `yaml:"retries"`
}

// Config is one environment's profile.
type Config struct {
	Env string `yaml:"-"`

	Log        Log         `yaml:"log"`
	Server     Server      `yaml:"server"`
	Cornershop Cornershop  `yaml:"cornershop"`
	Traversal  Traversal   `yaml:"traversal"`
	Export     Export      `yaml:"export"`
	HTTP       HTTP        `yaml:"http"`
	Proxy      ProxyConfig `yaml:"proxy"`
}
