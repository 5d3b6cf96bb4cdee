package config

type InternalConfig struct {
	App App
}

type App struct {
	Env                       string
	Port                      string
	Version                   string
	Address                   string
	Timezone                  string
	EndpointPrefix            string
	AdminAPIKey               string
	MaxRequests               int
	MaxTimeRequestsPerSeconds int
	ShutdownTimeoutInSeconds  int
}
