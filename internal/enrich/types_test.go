package enrich_test

import (
	"testing"

	"github.com/lanwarden/lanwarden/internal/enrich"
	"github.com/stretchr/testify/assert"
)

func TestHostEnrichment(t *testing.T) {
	t.Run("hostname candidates deduplicate", func(st *testing.T) {
		e := &enrich.HostEnrichment{IP: "192.168.1.20"}

		e.AddHostname("desk.local")
		e.AddHostname("desk.local")
		e.AddHostname("")
		e.AddHostname("192.168.1.20")

		assert.Equal(st, []string{"desk.local"}, e.Hostnames)
	})

	t.Run("insert puts the friendly name first", func(st *testing.T) {
		e := &enrich.HostEnrichment{}

		e.AddHostname("desk.local")
		e.InsertHostname("Office Desk")

		assert.Equal(st, []string{"Office Desk", "desk.local"}, e.Hostnames)
	})

	t.Run("insert leaves a known name in place", func(st *testing.T) {
		e := &enrich.HostEnrichment{}

		e.AddHostname("desk.local")
		e.AddHostname("Office Desk")
		e.InsertHostname("Office Desk")

		assert.Equal(st, []string{"desk.local", "Office Desk"}, e.Hostnames)
	})

	t.Run("primary hostname prefers names outside dot-local", func(st *testing.T) {
		e := &enrich.HostEnrichment{
			Hostnames: []string{"desk.local", "desk.lan"},
		}

		assert.Equal(st, "desk.lan", e.PrimaryHostname())
	})

	t.Run("primary hostname falls back through the candidates", func(st *testing.T) {
		onlyLocal := &enrich.HostEnrichment{Hostnames: []string{"desk.local"}}
		onlyNetbios := &enrich.HostEnrichment{NetBIOSName: "DESKTOP"}

		assert.Equal(st, "desk.local", onlyLocal.PrimaryHostname())
		assert.Equal(st, "DESKTOP", onlyNetbios.PrimaryHostname())
		assert.Equal(st, "", (&enrich.HostEnrichment{}).PrimaryHostname())
	})

	t.Run("friendly name is the first candidate", func(st *testing.T) {
		e := &enrich.HostEnrichment{Hostnames: []string{"Office Desk", "desk.local"}}

		assert.Equal(st, "Office Desk", e.FriendlyName())
		assert.Equal(st, "", (&enrich.HostEnrichment{}).FriendlyName())
	})

	t.Run("service descriptions deduplicate", func(st *testing.T) {
		e := &enrich.HostEnrichment{}

		e.AddService("Office NAS (_smb._tcp)")
		e.AddService("Office NAS (_smb._tcp)")
		e.AddService("")

		assert.Equal(st, []string{"Office NAS (_smb._tcp)"}, e.Services)
	})
}
