package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
// Future: could be loaded from the regulatory file instead of hardcoded here.
var DefaultAssumptions = []string{
	"HRA exemption approximated as rent claimed, capped at 50% of gross income",
	"Home loan interest (Section 24b) modeled without the self-occupied cap",
	"Health & Education Cess: flat 4% on slab tax",
	"Surcharge for incomes above ₹50L not modeled",
	"Section 87A rebate not modeled",
	"All amounts are annual figures in rupees",
}
