package mailer

import (
	"fmt"

	"github.com/rice-apps/rice-bikes-go/models"
)

type ReceiptLine struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type ReceiptData struct {
	CustomerName  string        `json:"customer_name"`
	TransactionID uint          `json:"transaction_id"`
	Items         []ReceiptLine `json:"items"`
	Repairs       []ReceiptLine `json:"repairs"`
	Total         string        `json:"total"`
}

type PickupData struct {
	CustomerName  string `json:"customer_name"`
	TransactionID uint   `json:"transaction_id"`
}

func ReceiptFromTransaction(trx *models.Transaction) ReceiptData {
	data := ReceiptData{
		CustomerName:  customerName(trx),
		TransactionID: trx.ID,
		Total:         trx.TotalCost.StringFixed(2),
	}
	for _, line := range trx.Items {
		data.Items = append(data.Items, ReceiptLine{
			Name:  line.Item.Name,
			Price: line.Price.StringFixed(2),
		})
	}
	for _, line := range trx.Repairs {
		data.Repairs = append(data.Repairs, ReceiptLine{
			Name:  line.Repair.Name,
			Price: line.Price.StringFixed(2),
		})
	}
	return data
}

func PickupFromTransaction(trx *models.Transaction) PickupData {
	return PickupData{
		CustomerName:  customerName(trx),
		TransactionID: trx.ID,
	}
}

func customerName(trx *models.Transaction) string {
	return fmt.Sprintf("%s %s", trx.Customer.FirstName, trx.Customer.LastName)
}
