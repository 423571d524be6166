package transport

// TTSRequest is the body accepted by POST /tts.
type TTSRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}

// TTSResponse is the body returned by POST /tts.
type TTSResponse struct {
	AudioBase64 string   `json:"audio_base64"`
	Progress    []string `json:"progress"`
}
