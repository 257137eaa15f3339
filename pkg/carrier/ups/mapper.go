package ups

import (
	"fmt"
	"strconv"

	"github.com/devacc8/cybership-carrier-service/pkg/carrier"
)

// mapper translates between the normalized domain model and the UPS wire
// format.
type mapper struct {
	cfg Config
}

func (m *mapper) toUPSRateRequest(req *carrier.RateRequest) *rateRequestBody {
	requestOption := "Shop"
	if req.ServiceLevel != "" {
		requestOption = "Rate"
	}

	serviceCode := defaultServiceCode
	if code, ok := serviceLevelToCode[req.ServiceLevel]; ok {
		serviceCode = code
	}

	shipTo := party{
		Name:    req.Destination.Name,
		Address: mapAddress(req.Destination),
	}
	if req.Destination.Residential {
		indicator := ""
		shipTo.Address.ResidentialAddressIndicator = &indicator
	}

	shipperName := req.Origin.Name
	if shipperName == "" {
		shipperName = "Shipper"
	}

	body := &rateRequestBody{
		RateRequest: rateRequest{
			Request: requestOptions{
				RequestOption: requestOption,
				TransactionReference: &transactionReference{
					CustomerContext: "Rating Request",
				},
			},
			Shipment: shipment{
				Shipper: party{
					Name:          shipperName,
					ShipperNumber: m.cfg.AccountNumber,
					Address:       mapAddress(req.Origin),
				},
				ShipTo:  shipTo,
				Service: &serviceRef{Code: serviceCode},
				Package: mapPackages(req.Packages),
			},
		},
	}

	if req.ShipFrom != nil {
		body.RateRequest.Shipment.ShipFrom = &party{
			Name:    req.ShipFrom.Name,
			Address: mapAddress(*req.ShipFrom),
		}
	}

	if m.cfg.AccountNumber != "" {
		body.RateRequest.Shipment.PaymentDetails = &paymentDetails{
			ShipmentCharge: []shipmentCharge{
				{
					Type:        "01",
					BillShipper: billShipper{AccountNumber: m.cfg.AccountNumber},
				},
			},
		}
	}

	return body
}

func (m *mapper) toRateResponse(body *rateResponseBody) *carrier.RateResponse {
	resp := &carrier.RateResponse{
		Quotes: make([]carrier.RateQuote, 0, len(body.RateResponse.RatedShipment)),
	}

	for _, rs := range body.RateResponse.RatedShipment {
		resp.Quotes = append(resp.Quotes, mapRatedShipment(rs))
	}

	for _, a := range body.RateResponse.Response.Alert {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %s", a.Code, a.Description))
	}

	return resp
}

func mapRatedShipment(rs ratedShipment) carrier.RateQuote {
	serviceCode := rs.Service.Code

	// Unknown wire service codes still round-trip to a normalized value.
	serviceLevel, ok := serviceCodeToLevel[serviceCode]
	if !ok {
		serviceLevel = serviceCodeToLevel[defaultServiceCode]
	}

	serviceName, ok := serviceNames[serviceCode]
	if !ok {
		serviceName = fmt.Sprintf("UPS Service %s", serviceCode)
	}

	weightUnit := carrier.WeightUnit(rs.BillingWeight.UnitOfMeasurement.Code)
	if weightUnit == "" {
		weightUnit = carrier.WeightLBS
	}

	quote := carrier.RateQuote{
		Carrier:      carrier.CarrierUPS,
		ServiceLevel: serviceLevel,
		ServiceName:  serviceName,
		TotalCharges: carrier.MonetaryAmount{
			Amount:   parseAmount(rs.TotalCharges.MonetaryValue),
			Currency: rs.TotalCharges.CurrencyCode,
		},
		TransportationCharges: carrier.MonetaryAmount{
			Amount:   parseAmount(rs.TransportationCharges.MonetaryValue),
			Currency: rs.TransportationCharges.CurrencyCode,
		},
		BillingWeight: carrier.PackageWeight{
			Value: parseAmount(rs.BillingWeight.Weight),
			Unit:  weightUnit,
		},
	}

	if gd := rs.GuaranteedDelivery; gd != nil {
		days, _ := strconv.Atoi(gd.BusinessDaysInTransit)
		quote.GuaranteedDelivery = &carrier.GuaranteedDelivery{
			BusinessDays:   days,
			DeliveryByTime: gd.DeliveryByTime,
		}
	}

	return quote
}

func mapAddress(a carrier.Address) wireAddress {
	return wireAddress{
		AddressLine:       a.AddressLines,
		City:              a.City,
		StateProvinceCode: a.StateProvince,
		PostalCode:        a.PostalCode,
		CountryCode:       a.CountryCode,
	}
}

func mapPackages(pkgs []carrier.ShipmentPackage) []wirePackage {
	result := make([]wirePackage, len(pkgs))
	for i, p := range pkgs {
		wp := wirePackage{
			PackagingType: codeDescription{
				Code:        "02",
				Description: "Customer Supplied Package",
			},
			PackageWeight: wireWeight{
				UnitOfMeasurement: codeDescription{Code: string(p.Weight.Unit)},
				Weight:            formatAmount(p.Weight.Value),
			},
		}
		if d := p.Dimensions; d != nil {
			wp.Dimensions = &wireDimensions{
				UnitOfMeasurement: codeDescription{Code: string(d.Unit)},
				Length:            formatAmount(d.Length),
				Width:             formatAmount(d.Width),
				Height:            formatAmount(d.Height),
			}
		}
		result[i] = wp
	}
	return result
}

// parseAmount mirrors the source fidelity rule: carrier-reported numeric
// strings map to float64 with no added precision guarantees.
func parseAmount(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
