package ups

import (
	"github.com/go-playground/validator/v10"
)

// ============================================================================
// Wire types for the UPS Rating API. PascalCase keys and string-typed
// numerics match the JSON the API actually speaks.
// ============================================================================

type rateRequestBody struct {
	RateRequest rateRequest `json:"RateRequest"`
}

type rateRequest struct {
	Request  requestOptions `json:"Request"`
	Shipment shipment       `json:"Shipment"`
}

type requestOptions struct {
	RequestOption        string                `json:"RequestOption"` // "Rate" or "Shop"
	TransactionReference *transactionReference `json:"TransactionReference,omitempty"`
}

type transactionReference struct {
	CustomerContext string `json:"CustomerContext,omitempty"`
}

type shipment struct {
	Shipper        party           `json:"Shipper"`
	ShipTo         party           `json:"ShipTo"`
	ShipFrom       *party          `json:"ShipFrom,omitempty"`
	Service        *serviceRef     `json:"Service,omitempty"`
	Package        []wirePackage   `json:"Package"`
	PaymentDetails *paymentDetails `json:"PaymentDetails,omitempty"`
}

type party struct {
	Name          string      `json:"Name,omitempty"`
	ShipperNumber string      `json:"ShipperNumber,omitempty"`
	Address       wireAddress `json:"Address"`
}

type wireAddress struct {
	AddressLine       []string `json:"AddressLine"`
	City              string   `json:"City"`
	StateProvinceCode string   `json:"StateProvinceCode,omitempty"`
	PostalCode        string   `json:"PostalCode"`
	CountryCode       string   `json:"CountryCode"`
	// Presence of the (empty) indicator marks a residential destination.
	ResidentialAddressIndicator *string `json:"ResidentialAddressIndicator,omitempty"`
}

type serviceRef struct {
	Code        string `json:"Code" validate:"required"`
	Description string `json:"Description,omitempty"`
}

type wirePackage struct {
	PackagingType codeDescription `json:"PackagingType"`
	Dimensions    *wireDimensions `json:"Dimensions,omitempty"`
	PackageWeight wireWeight      `json:"PackageWeight"`
}

type codeDescription struct {
	Code        string `json:"Code"`
	Description string `json:"Description,omitempty"`
}

type wireDimensions struct {
	UnitOfMeasurement codeDescription `json:"UnitOfMeasurement"`
	Length            string          `json:"Length"`
	Width             string          `json:"Width"`
	Height            string          `json:"Height"`
}

type wireWeight struct {
	UnitOfMeasurement codeDescription `json:"UnitOfMeasurement"`
	Weight            string          `json:"Weight" validate:"required"`
}

type paymentDetails struct {
	ShipmentCharge []shipmentCharge `json:"ShipmentCharge"`
}

type shipmentCharge struct {
	Type        string      `json:"Type"`
	BillShipper billShipper `json:"BillShipper"`
}

type billShipper struct {
	AccountNumber string `json:"AccountNumber"`
}

// ---- Response types ----

type rateResponseBody struct {
	RateResponse *rateResponse `json:"RateResponse" validate:"required"`
}

type rateResponse struct {
	Response      responseStatus  `json:"Response"`
	RatedShipment []ratedShipment `json:"RatedShipment" validate:"required,min=1,dive"`
}

type responseStatus struct {
	ResponseStatus codeDescriptionLower `json:"ResponseStatus"`
	Alert          []alert              `json:"Alert,omitempty"`
}

type codeDescriptionLower struct {
	Code        string `json:"Code"`
	Description string `json:"Description"`
}

type alert struct {
	Code        string `json:"Code"`
	Description string `json:"Description"`
}

type ratedShipment struct {
	Service               serviceRef          `json:"Service"`
	BillingWeight         wireWeight          `json:"BillingWeight"`
	TransportationCharges monetary            `json:"TransportationCharges"`
	TotalCharges          monetary            `json:"TotalCharges"`
	GuaranteedDelivery    *guaranteedDelivery `json:"GuaranteedDelivery,omitempty"`
}

type monetary struct {
	CurrencyCode  string `json:"CurrencyCode" validate:"required"`
	MonetaryValue string `json:"MonetaryValue" validate:"required"`
}

type guaranteedDelivery struct {
	BusinessDaysInTransit string `json:"BusinessDaysInTransit"`
	DeliveryByTime        string `json:"DeliveryByTime,omitempty"`
}

// ---- OAuth types ----

type oauthResponse struct {
	AccessToken string `json:"access_token" validate:"required"`
	TokenType   string `json:"token_type" validate:"required"`
	IssuedAt    string `json:"issued_at,omitempty"`
	ExpiresIn   string `json:"expires_in" validate:"required"` // seconds, as a string
	ClientID    string `json:"client_id,omitempty"`
	Scope       string `json:"scope,omitempty"`
	Status      string `json:"status,omitempty"`
}

// ---- Error envelope ----

type errorResponseBody struct {
	Response errorResponse `json:"response"`
}

type errorResponse struct {
	Errors []apiError `json:"errors"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ============================================================================
// Response shape validation
// ============================================================================

var shapeValidator = validator.New(validator.WithRequiredStructEnabled())

// checkShape validates a decoded response against its required fields and
// returns one issue string per violation, or nil when the shape is valid.
func checkShape(v any) []string {
	err := shapeValidator.Struct(v)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	issues := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, fe.Namespace()+": failed \""+fe.Tag()+"\" constraint")
	}
	return issues
}
