package pricing

import _ "embed"

// pricingData holds App Service plan retail prices (USD, pay-as-you-go,
// East US) as of the embedded table's revision. Override with a pricing
// file when rates drift.
//
//go:embed pricing.json
var pricingData []byte
