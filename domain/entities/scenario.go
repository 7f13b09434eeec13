package entities

// Scenario is a fixed, ordered verification procedure against one page
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// BaseURL is probed by the preflight check before a browser starts.
	BaseURL string        `json:"base_url"`
	Launch  LaunchOptions `json:"launch"`
	Steps   []Step        `json:"steps"`
}

// LaunchOptions configures the browser a scenario runs in
type LaunchOptions struct {
	Headless bool `json:"headless"`
	// Console forwards browser console messages to the diagnostics log.
	Console bool `json:"console"`
}
