package clients

const (
	USER_AGENT = "sentiaura-client/1.0 (+https://github.com/spacesedan/sentiaura)"

	OPENAI_TEMPERATURE = 0.2
)
