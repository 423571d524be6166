package transport

// DiagnoseResponse is the body returned by POST /diagnose.
type DiagnoseResponse struct {
	Diagnosis        string   `json:"diagnosis"`
	DoctorName       string   `json:"doctorName"`
	DoctorMobile     string   `json:"doctorMobile"`
	DoctorMobileE164 string   `json:"doctorMobileE164,omitempty"`
	Progress         []string `json:"progress"`
}
