package conf

type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Radar  *Radar  `json:"radar"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Data struct {
	Database *Database `json:"database"`
}

type Database struct {
	Driver string `json:"driver"` // postgres 或 sqlite
	Source string `json:"source"`
}

type Radar struct {
	Llm         *LLM         `json:"llm"`
	Chunk       *Chunk       `json:"chunk"`
	Fetch       *Fetch       `json:"fetch"`
	Search      *Search      `json:"search"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
	Redis       *Redis       `json:"redis"`
}

type LLM struct {
	Provider   string `json:"provider"`
	BaseUrl    string `json:"base_url"`
	ApiKey     string `json:"api_key"`
	Model      string `json:"model"`
	Timeout    int32  `json:"timeout"`
	MaxRetries int32  `json:"max_retries"`
}

type Chunk struct {
	MaxLength int32 `json:"max_length"`
}

type Fetch struct {
	Timeout int32 `json:"timeout"`
}

type Search struct {
	Provider string   `json:"provider"`
	Tavily   *Tavily  `json:"tavily"`
	Searxng  *SearXNG `json:"searxng"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps     int32 `json:"qps"`
	Rpm     int32 `json:"rpm"`
	Workers int32 `json:"workers"`
}

type Redis struct {
	Host string `json:"host"`
	Port int32  `json:"port"`
	Ttl  int32  `json:"ttl"`
}
