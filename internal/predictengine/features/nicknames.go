package features

// nicknameMappings is the fixed 63-entry formal-name -> nicknames table used
// only by HasNickname; it plays no role in local-part rendering.
var nicknameMappings = map[string][]string{
	"alexander":  {"alex"},
	"andrew":     {"andy"},
	"anne":       {"annie", "nancy"},
	"arthur":     {"art"},
	"benjamin":   {"ben"},
	"william":    {"bill", "will"},
	"robert":     {"bob", "bobby", "rob"},
	"catherine":  {"cathy"},
	"charles":    {"charlie", "chuck"},
	"daniel":     {"dan", "danny"},
	"david":      {"dave"},
	"donald":     {"don"},
	"edward":     {"ed", "eddie"},
	"elizabeth":  {"eliza", "liz", "liza"},
	"eleanor":    {"ellie"},
	"francis":    {"frank"},
	"frederick":  {"fred"},
	"gerald":     {"gary", "jerry"},
	"gregory":    {"greg"},
	"harold":     {"harry", "hal"},
	"john":       {"jack", "johnny"},
	"jacob":      {"jake"},
	"janet":      {"jan"},
	"jeffrey":    {"jeff"},
	"jennifer":   {"jen", "jenny"},
	"james":      {"jim", "jimmy"},
	"joseph":     {"joe", "joey", "jody"},
	"jonathan":   {"jon"},
	"joshua":     {"josh"},
	"joy":        {"joyce"},
	"judith":     {"judy"},
	"katherine":  {"kate", "kathy"},
	"kenneth":    {"ken"},
	"lawrence":   {"larry"},
	"lewis":      {"lou"},
	"margaret":   {"maggie", "marge"},
	"martin":     {"marty"},
	"matthew":    {"matt"},
	"megan":      {"meg"},
	"melvin":     {"mel"},
	"michael":    {"mike"},
	"nicholas":   {"nick"},
	"patrick":    {"pat"},
	"peter":      {"pete"},
	"philip":     {"phil"},
	"richard":    {"rick", "rich"},
	"ronald":     {"ron"},
	"samuel":     {"sam"},
	"steven":     {"steve"},
	"susan":      {"sue"},
	"theodore":   {"ted"},
	"terence":    {"terry"},
	"timothy":    {"tim"},
	"thomas":     {"tom"},
	"anthony":    {"tony"},
	"victor":     {"vic"},
	"zachary":    {"zack", "zak"},
	"nastya":     {"nastia"},
	"douglas":    {"doug"},
	"mitchell":   {"mitch"},
	"wesley":     {"wes"},
	"patricia":   {"tricia"},
	"rajiv":      {"raj"},
}

// findNicknames returns the nicknames for a formal name, or nil if formalName
// is not a key of the table.
func findNicknames(formalName string) []string {
	return nicknameMappings[formalName]
}
