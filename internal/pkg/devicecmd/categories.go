package devicecmd

import "fmt"

/*
 *   Fixed command categories, in display rank order
 */

type Category int

const (
	CategoryDeviceState Category = iota
	CategoryWifi
	CategoryConnectivity
	CategoryFirmware
	CategoryDirectLink
	CategoryVendor
	CategoryLogging
	CategoryProvisioning
)

type categoryInfo struct {
	name string
	icon string
}

// Icons are presentation hints for the host UI, nothing in this
// package interprets them.
var categoryTable = []categoryInfo{
	{"Device State & Control", "power.circle"},
	{"WiFi Operations", "wifi"},
	{"Connectivity & Status", "antenna.radiowaves.left.and.right"},
	{"Firmware & Maintenance", "gearshape.2"},
	{"Direct Link", "link"},
	{"Vendor & Messaging", "envelope"},
	{"Logging & Diagnostics", "doc.text"},
	{"Provisioning & Setup", "mappin.and.ellipse"},
}

// Categories returns every category in rank order.
func Categories() []Category {
	cats := make([]Category, len(categoryTable))
	for i := range categoryTable {
		cats[i] = Category(i)
	}
	return cats
}

func (c Category) Name() string {
	if int(c) < 0 || int(c) >= len(categoryTable) {
		return fmt.Sprintf("unknown (category: %d)", c)
	}
	return categoryTable[c].name
}

func (c Category) Icon() string {
	if int(c) < 0 || int(c) >= len(categoryTable) {
		return ""
	}
	return categoryTable[c].icon
}

// Rank is the fixed sort position of the category.
func (c Category) Rank() int {
	return int(c)
}
