package dto

import "fmt"

// Summary formats an average the way the command line prints it.
func Summary(day, month int, avgMin, avgMax float64) string {
	return fmt.Sprintf("date= %d-%d average min temperature = %v, average max temperature = %v",
		day, month, avgMin, avgMax)
}
