// Package models defines data structures for registry extraction.
package models

// Field identifies a business column of the registry worksheet.
type Field int

const (
	FieldRegistryNumber Field = iota
	FieldSubject
	FieldRegion
	FieldCustomerType
	FieldPurchaseForm
	FieldPlatform
	FieldParticipants
	FieldWinner
	FieldStatus
	FieldMaxPrice
	FieldEstimation
	FieldBidGuarantee
	FieldContractGuarantee
	FieldWinnerPrice
	FieldCollectionDate
	FieldCollectionTime
	FieldApprovalDate
	FieldBiddingDate
	FieldBiddingTime

	fieldCount
)

// fieldLabels holds the workbook defined name bound to each field.
var fieldLabels = [fieldCount]string{
	FieldRegistryNumber:    "Номер",
	FieldSubject:           "Предмет",
	FieldRegion:            "Регион",
	FieldCustomerType:      "Заказчик",
	FieldPurchaseForm:      "Форма_проведения",
	FieldPlatform:          "Площадка",
	FieldParticipants:      "Участники",
	FieldWinner:            "Победитель",
	FieldStatus:            "Статус",
	FieldMaxPrice:          "НМЦК",
	FieldEstimation:        "Расчет",
	FieldBidGuarantee:      "Обеспечение_заявки",
	FieldContractGuarantee: "Обеспечение_контракта",
	FieldWinnerPrice:       "Сумма_выигранного_лота",
	FieldCollectionDate:    "Дата_окончания_подачи_заявок",
	FieldCollectionTime:    "Время_окончания_подачи_заявок",
	FieldApprovalDate:      "Дата_окончания_срока_рассмотрения_заявок",
	FieldBiddingDate:       "Дата_проведения_аукциона_конкурса",
	FieldBiddingTime:       "Время_проведения_аукциона_конкурса",
}

var fieldNames = [fieldCount]string{
	FieldRegistryNumber:    "registry_number",
	FieldSubject:           "purchase_subject",
	FieldRegion:            "region",
	FieldCustomerType:      "customer_type",
	FieldPurchaseForm:      "purchase_form",
	FieldPlatform:          "platform",
	FieldParticipants:      "participants",
	FieldWinner:            "winner",
	FieldStatus:            "status",
	FieldMaxPrice:          "max_price",
	FieldEstimation:        "estimation",
	FieldBidGuarantee:      "bid_guarantee",
	FieldContractGuarantee: "contract_guarantee",
	FieldWinnerPrice:       "winner_price",
	FieldCollectionDate:    "collection_date",
	FieldCollectionTime:    "collection_time",
	FieldApprovalDate:      "approval_date",
	FieldBiddingDate:       "bidding_date",
	FieldBiddingTime:       "bidding_time",
}

var fieldsByLabel = func() map[string]Field {
	m := make(map[string]Field, fieldCount)
	for f, label := range fieldLabels {
		m[label] = Field(f)
	}
	return m
}()

// FieldByLabel looks up the field bound to a defined name.
func FieldByLabel(label string) (Field, bool) {
	f, ok := fieldsByLabel[label]
	return f, ok
}

// AllFields returns every field in declaration order.
func AllFields() []Field {
	fields := make([]Field, fieldCount)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// Valid reports whether f is a declared field.
func (f Field) Valid() bool {
	return f >= 0 && f < fieldCount
}

// Label returns the defined name of the field.
func (f Field) Label() string {
	if !f.Valid() {
		return ""
	}
	return fieldLabels[f]
}

func (f Field) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return fieldNames[f]
}
