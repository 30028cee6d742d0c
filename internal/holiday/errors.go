package holiday

import "fmt"

func errInvalidYear(year int) error {
	return fmt.Errorf("holiday: invalid year %d", year)
}
