package interaction

import (
	"fmt"
	"strconv"
)

// Container addresses the pool or one bin of a drag-and-drop question.
type Container int

// Pool is the unsorted holding area. Bins are addressed by index from 0.
const Pool Container = -1

func Bin(i int) Container { return Container(i) }

func (c Container) IsPool() bool { return c == Pool }

func (c Container) String() string {
	if c == Pool {
		return "pool"
	}
	return strconv.Itoa(int(c))
}

// ParseContainer accepts "pool" or a non-negative bin index.
func ParseContainer(s string) (Container, error) {
	if s == "pool" {
		return Pool, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return Pool, fmt.Errorf("invalid container %q", s)
	}
	return Bin(i), nil
}

func (c Container) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Container) UnmarshalText(text []byte) error {
	parsed, err := ParseContainer(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
