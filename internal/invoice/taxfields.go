package invoice

import (
	"fmt"
	"sort"
)

// TaxFields are the free-text boxes of the TAX layout
type TaxFields struct {
	DeliveryNote      string `json:"deliveryNote"`
	ModeOfPayment     string `json:"modeOfPayment"`
	ReferenceNo       string `json:"referenceNo"`
	OtherReferences   string `json:"otherReferences"`
	BuyersOrderNo     string `json:"buyersOrderNo"`
	BuyersOrderDate   string `json:"buyersOrderDate"`
	DispatchDocNo     string `json:"dispatchDocNo"`
	DeliveryNoteDate  string `json:"deliveryNoteDate"`
	DispatchedThrough string `json:"dispatchedThrough"`
	Destination       string `json:"destination"`
	TermsOfDelivery   string `json:"termsOfDelivery"`

	AgencyState     string `json:"agencyState"`
	AgencyStateCode string `json:"agencyStateCode"`

	ConsigneeName    string `json:"consigneeName"`
	ConsigneeAddress string `json:"consigneeAddress"`
	ConsigneeGST     string `json:"consigneeGST"`
	ConsigneeState   string `json:"consigneeState"`
	ConsigneeCode    string `json:"consigneeCode"`

	BuyerName    string `json:"buyerName"`
	BuyerAddress string `json:"buyerAddress"`
	BuyerGST     string `json:"buyerGST"`
	BuyerState   string `json:"buyerState"`
	BuyerCode    string `json:"buyerCode"`

	SubDescription string `json:"subDescription"`
}

// DefaultTaxFields are the values before any client is applied
func DefaultTaxFields() TaxFields {
	return TaxFields{
		ModeOfPayment:   "Immediate",
		AgencyState:     "Karnataka",
		AgencyStateCode: "29",
		SubDescription:  "Digital Marketing Services",
	}
}

// clientStateName is assumed for any client that has a GSTIN
const clientStateName = "Maharashtra"

// applyClient fills the consignee and buyer blocks from the client record
func (t *TaxFields) applyClient(businessName, address, gstin string) {
	var state, code string
	if gstin != "" {
		state = clientStateName
		code = gstin
		if len(code) > 2 {
			code = code[:2]
		}
	}

	t.ConsigneeName, t.BuyerName = businessName, businessName
	t.ConsigneeAddress, t.BuyerAddress = address, address
	t.ConsigneeGST, t.BuyerGST = gstin, gstin
	t.ConsigneeState, t.BuyerState = state, state
	t.ConsigneeCode, t.BuyerCode = code, code
}

func (t *TaxFields) fields() map[string]*string {
	return map[string]*string{
		"deliveryNote":      &t.DeliveryNote,
		"modeOfPayment":     &t.ModeOfPayment,
		"referenceNo":       &t.ReferenceNo,
		"otherReferences":   &t.OtherReferences,
		"buyersOrderNo":     &t.BuyersOrderNo,
		"buyersOrderDate":   &t.BuyersOrderDate,
		"dispatchDocNo":     &t.DispatchDocNo,
		"deliveryNoteDate":  &t.DeliveryNoteDate,
		"dispatchedThrough": &t.DispatchedThrough,
		"destination":       &t.Destination,
		"termsOfDelivery":   &t.TermsOfDelivery,
		"agencyState":       &t.AgencyState,
		"agencyStateCode":   &t.AgencyStateCode,
		"consigneeName":     &t.ConsigneeName,
		"consigneeAddress":  &t.ConsigneeAddress,
		"consigneeGST":      &t.ConsigneeGST,
		"consigneeState":    &t.ConsigneeState,
		"consigneeCode":     &t.ConsigneeCode,
		"buyerName":         &t.BuyerName,
		"buyerAddress":      &t.BuyerAddress,
		"buyerGST":          &t.BuyerGST,
		"buyerState":        &t.BuyerState,
		"buyerCode":         &t.BuyerCode,
		"subDescription":    &t.SubDescription,
	}
}

// Set updates one field by its key, e.g. "modeOfPayment"
func (t *TaxFields) Set(key, value string) error {
	f, ok := t.fields()[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTaxField, key)
	}
	*f = value
	return nil
}

// Get returns the value of one field by its key
func (t *TaxFields) Get(key string) (string, bool) {
	f, ok := t.fields()[key]
	if !ok {
		return "", false
	}
	return *f, true
}

// TaxFieldKeys lists the keys accepted by Set
func TaxFieldKeys() []string {
	var t TaxFields
	keys := make([]string, 0, len(t.fields()))
	for k := range t.fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
