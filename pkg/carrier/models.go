package carrier

// CarrierCode identifies a supported carrier.
type CarrierCode string

const (
	CarrierUPS   CarrierCode = "UPS"
	CarrierFedEx CarrierCode = "FEDEX"
	CarrierUSPS  CarrierCode = "USPS"
	CarrierDHL   CarrierCode = "DHL"
)

// WeightUnit represents weight measurement unit.
type WeightUnit string

const (
	WeightLBS WeightUnit = "LBS"
	WeightKGS WeightUnit = "KGS"
)

// DimensionUnit represents dimension measurement unit.
type DimensionUnit string

const (
	DimensionIN DimensionUnit = "IN"
	DimensionCM DimensionUnit = "CM"
)

// ServiceLevel represents a normalized shipping speed/tier.
type ServiceLevel string

const (
	ServiceNextDayAir           ServiceLevel = "NEXT_DAY_AIR"
	ServiceNextDayAirSaver      ServiceLevel = "NEXT_DAY_AIR_SAVER"
	ServiceNextDayAirEarly      ServiceLevel = "NEXT_DAY_AIR_EARLY"
	ServiceSecondDayAir         ServiceLevel = "SECOND_DAY_AIR"
	ServiceSecondDayAirAM       ServiceLevel = "SECOND_DAY_AIR_AM"
	ServiceThreeDaySelect       ServiceLevel = "THREE_DAY_SELECT"
	ServiceGround               ServiceLevel = "GROUND"
	ServiceStandard             ServiceLevel = "STANDARD"
	ServiceWorldwideExpress     ServiceLevel = "WORLDWIDE_EXPRESS"
	ServiceWorldwideExpedited   ServiceLevel = "WORLDWIDE_EXPEDITED"
	ServiceWorldwideExpressPlus ServiceLevel = "WORLDWIDE_EXPRESS_PLUS"
	ServiceSaver                ServiceLevel = "SAVER"
)

// KnownServiceLevels is the closed set of normalized service levels.
var KnownServiceLevels = map[ServiceLevel]bool{
	ServiceNextDayAir:           true,
	ServiceNextDayAirSaver:      true,
	ServiceNextDayAirEarly:      true,
	ServiceSecondDayAir:         true,
	ServiceSecondDayAirAM:       true,
	ServiceThreeDaySelect:       true,
	ServiceGround:               true,
	ServiceStandard:             true,
	ServiceWorldwideExpress:     true,
	ServiceWorldwideExpedited:   true,
	ServiceWorldwideExpressPlus: true,
	ServiceSaver:                true,
}

// Address represents a shipping address.
type Address struct {
	Name          string   `json:"name,omitempty" validate:"omitempty,max=35"`
	AddressLines  []string `json:"addressLines" validate:"required,min=1,max=3,dive,required,max=35"`
	City          string   `json:"city" validate:"required,max=30"`
	StateProvince string   `json:"stateProvince,omitempty" validate:"omitempty,len=2"`
	PostalCode    string   `json:"postalCode" validate:"required,max=9"`
	CountryCode   string   `json:"countryCode" validate:"required,len=2"` // ISO 3166-1 alpha-2
	Residential   bool     `json:"residential,omitempty"`
}

// PackageWeight is a weight value with its unit.
type PackageWeight struct {
	Value float64    `json:"value" validate:"required,gt=0"`
	Unit  WeightUnit `json:"unit" validate:"required,oneof=LBS KGS"`
}

// PackageDimensions are the outer dimensions of a package.
type PackageDimensions struct {
	Length float64       `json:"length" validate:"required,gt=0"`
	Width  float64       `json:"width" validate:"required,gt=0"`
	Height float64       `json:"height" validate:"required,gt=0"`
	Unit   DimensionUnit `json:"unit" validate:"required,oneof=IN CM"`
}

// ShipmentPackage represents a package to be rated.
type ShipmentPackage struct {
	Weight     PackageWeight      `json:"weight"`
	Dimensions *PackageDimensions `json:"dimensions,omitempty"`
}

// RateRequest is the normalized query for shipping quotes.
type RateRequest struct {
	Origin       Address           `json:"origin"`
	Destination  Address           `json:"destination"`
	Packages     []ShipmentPackage `json:"packages" validate:"required,min=1,max=200,dive"`
	ServiceLevel ServiceLevel      `json:"serviceLevel,omitempty" validate:"omitempty,service_level"`
	ShipFrom     *Address          `json:"shipFrom,omitempty"`
}

// MonetaryAmount is a numeric amount with its currency code.
type MonetaryAmount struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// GuaranteedDelivery carries carrier-guaranteed transit information.
type GuaranteedDelivery struct {
	BusinessDays   int    `json:"businessDays"`
	DeliveryByTime string `json:"deliveryByTime,omitempty"`
}

// RateQuote is one priced shipping option for a service level.
type RateQuote struct {
	Carrier               CarrierCode         `json:"carrier"`
	ServiceLevel          ServiceLevel        `json:"serviceLevel"`
	ServiceName           string              `json:"serviceName"`
	TotalCharges          MonetaryAmount      `json:"totalCharges"`
	TransportationCharges MonetaryAmount      `json:"transportationCharges"`
	BillingWeight         PackageWeight       `json:"billingWeight"`
	GuaranteedDelivery    *GuaranteedDelivery `json:"guaranteedDelivery,omitempty"`
}

// RateResponse is an ordered list of quotes plus non-fatal warnings.
type RateResponse struct {
	Quotes   []RateQuote `json:"quotes"`
	Warnings []string    `json:"warnings,omitempty"`
}
