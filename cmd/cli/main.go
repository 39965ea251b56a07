// Command cli is a small operational tool for poking the card store
// without going through the HTTP API.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nfransec/twocents/infra"
	"github.com/nfransec/twocents/pkg/config"
	"github.com/nfransec/twocents/pkg/service"
)

func main() {
	argsLen := len(os.Args)
	if argsLen < 2 {
		fmt.Println("Usage: cli <command> [arguments]")
		fmt.Println("Commands:")
		fmt.Println("  register <username> <email> <password>")
		fmt.Println("  add-card <user_id> <card_name> <bank_name> <limit>")
		fmt.Println("  list-cards <user_id>")
		fmt.Println("  mark-paid <user_id> <card_id>")
		return
	}
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		return
	}
	db, err := infra.NewDBConnection(cfg.DB)
	if err != nil {
		fmt.Println("Failed to connect to database:", err)
		return
	}
	uowFactory := infra.NewUoWFactory(db)
	logger := slog.Default()
	cardSvc := service.NewCardService(uowFactory, logger)
	userSvc := service.NewUserService(uowFactory, logger)

	switch os.Args[1] {
	case "register":
		if argsLen < 5 {
			fmt.Println("Usage: register <username> <email> <password>")
			return
		}
		u, err := userSvc.CreateUser(os.Args[2], os.Args[3], os.Args[4])
		if err != nil {
			fmt.Println("Error creating user:", err)
			return
		}
		fmt.Printf("User created: ID=%s, Username=%s\n", u.ID, u.Username)
	case "add-card":
		if argsLen < 6 {
			fmt.Println("Usage: add-card <user_id> <card_name> <bank_name> <limit>")
			return
		}
		limit, err := decimal.NewFromString(os.Args[5])
		if err != nil {
			fmt.Println("Invalid limit:", err)
			return
		}
		c, err := cardSvc.CreateCard(uuid.MustParse(os.Args[2]), os.Args[3], os.Args[4], "", limit)
		if err != nil {
			fmt.Println("Error creating card:", err)
			return
		}
		fmt.Printf("Card created: ID=%s, %s %s, limit=%s\n", c.ID, c.BankName, c.CardName, c.CreditLimit)
	case "list-cards":
		if argsLen < 3 {
			fmt.Println("Usage: list-cards <user_id>")
			return
		}
		cards, err := cardSvc.ListCards(uuid.MustParse(os.Args[2]))
		if err != nil {
			fmt.Println("Error listing cards:", err)
			return
		}
		for _, c := range cards {
			fmt.Printf("%s  %-20s %-8s outstanding=%s due=%s paid=%v\n",
				c.ID, c.CardName, c.BankName, c.OutstandingAmount, c.DueDate, c.IsPaid)
		}
	case "mark-paid":
		if argsLen < 4 {
			fmt.Println("Usage: mark-paid <user_id> <card_id>")
			return
		}
		c, err := cardSvc.MarkCardPaid(uuid.MustParse(os.Args[2]), uuid.MustParse(os.Args[3]))
		if err != nil {
			fmt.Println("Error marking card paid:", err)
			return
		}
		fmt.Printf("Card %s paid: %s on %s\n", c.ID, c.LastPaymentAmount, c.LastPaymentDate.Format("2006-01-02"))
	default:
		fmt.Println("Unknown command:", os.Args[1])
	}
}
