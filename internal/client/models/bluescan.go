package models

// BlueScanApp is the editable part of a BlueScan app.
type BlueScanApp struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	SDKHost string `json:"sdk_host,omitempty"`
}

// BlueScanRequest creates an app under a merchant branch. MerchantID is the
// merchant's ext_id and ExtID the branch's.
type BlueScanRequest struct {
	MerchantID string      `json:"merchant_id"`
	ExtID      string      `json:"ext_id"`
	App        BlueScanApp `json:"bluescan_app"`
}

type BlueScanCreated struct {
	Message                string `json:"message"`
	BlueScanAppID          string `json:"bluescan_app_id"`
	Reference              string `json:"reference"`
	State                  string `json:"state"`
	MerchantSDKLauncherURL string `json:"merchant_sdk_launcher_url"`
	OnboardingURL          string `json:"onboarding_url"`
}

type BlueScanAppInfo struct {
	ID                     string `json:"id"`
	Reference              string `json:"reference"`
	Name                   string `json:"name"`
	Type                   string `json:"type"`
	SDKHost                string `json:"sdk_host"`
	State                  string `json:"state"`
	MerchantSDKLauncherURL string `json:"merchant_sdk_launcher_url,omitempty"`
	OnboardingURL          string `json:"onboarding_url,omitempty"`
	InsertedAt             string `json:"inserted_at,omitempty"`
	UpdatedAt              string `json:"updated_at,omitempty"`
}
