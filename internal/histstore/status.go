package histstore

import (
	"fmt"

	"github.com/dkrylov/shiftline/schema"
)

// PrintStoreStatus prints history store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Rows: %d\n", status.TotalRows)
	fmt.Printf("Distinct Dates: %d\n", status.DistinctDates)
	if status.TotalRows > 0 {
		fmt.Printf("Last Save: %s\n", status.LastSaveTime.Format("2006-01-02 15:04:05"))
	}
}
