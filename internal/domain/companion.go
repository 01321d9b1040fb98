package domain

// CompanionProfile is the public catalog view of an approved companion
type CompanionProfile struct {
	AccountID       int64
	DisplayName     string
	City            string
	Bio             string
	ServicesOffered ServiceTags
	Languages       []string
	HourlyRate      float64
	PhotoURIs       []string
}

// ProfileFromApplication builds the catalog view from an approved application
func ProfileFromApplication(acc *Account, app *CompanionApplication) *CompanionProfile {
	return &CompanionProfile{
		AccountID:       app.AccountID,
		DisplayName:     acc.DisplayName,
		City:            app.City,
		Bio:             app.Bio,
		ServicesOffered: app.ServicesOffered,
		Languages:       app.Languages,
		HourlyRate:      app.HourlyRate,
		PhotoURIs:       app.PhotoURIs,
	}
}
