package types

// Plan describes a platform plan a user can subscribe to. Plans are declared in
// config and used to label plan distributions in revenue analytics.
type Plan struct {
	ID           string       `json:"id" mapstructure:"id"`
	Name         string       `json:"name" mapstructure:"name"`
	BillingCycle BillingCycle `json:"billing_cycle" mapstructure:"billing_cycle"`
}

func (p *Plan) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
