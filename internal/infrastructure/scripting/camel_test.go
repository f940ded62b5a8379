package scripting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelCase(t *testing.T) {
	assert.Equal(t, "getNavigationState", camelCase("get_navigation_state"))
	assert.Equal(t, "reload", camelCase("reload"))
	assert.Equal(t, "waitForElement", camelCase("wait_for_element"))
}
