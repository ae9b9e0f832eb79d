package tzresolve

// windowsZoneEntry is one row of the Windows display-label -> IANA mapping
// table. Real Windows zone data (per Unicode CLDR's windowsZones.xml) maps
// a single Windows ID to several IANA names depending on territory; iana[0]
// is always the "golden" / territory-neutral zone, matching step 7's "first
// IANA name in that entry's iana list" rule.
type windowsZoneEntry struct {
	iana []string
}

// windowsToIANA maps Windows time zone display labels (as they appear in
// Outlook/Exchange TZID parameters, e.g. "W. Europe Standard Time") to their
// IANA equivalents.
var windowsToIANA = map[string]windowsZoneEntry{
	"Egypt Standard Time":             {[]string{"Africa/Cairo"}},
	"Morocco Standard Time":           {[]string{"Africa/Casablanca"}},
	"South Africa Standard Time":      {[]string{"Africa/Johannesburg"}},
	"W. Central Africa Standard Time": {[]string{"Africa/Lagos"}},
	"E. Africa Standard Time":         {[]string{"Africa/Nairobi"}},
	"Libya Standard Time":             {[]string{"Africa/Tripoli"}},
	"Namibia Standard Time":           {[]string{"Africa/Windhoek"}},

	"Aleutian Standard Time":          {[]string{"America/Adak"}},
	"Alaskan Standard Time":           {[]string{"America/Anchorage"}},
	"Tocantins Standard Time":         {[]string{"America/Araguaina"}},
	"Paraguay Standard Time":          {[]string{"America/Asuncion"}},
	"Bahia Standard Time":             {[]string{"America/Bahia"}},
	"SA Pacific Standard Time":        {[]string{"America/Bogota"}},
	"Argentina Standard Time":         {[]string{"America/Buenos_Aires"}},
	"Eastern Standard Time (Mexico)":  {[]string{"America/Cancun"}},
	"Venezuela Standard Time":         {[]string{"America/Caracas"}},
	"SA Eastern Standard Time":        {[]string{"America/Cayenne"}},
	"Central Standard Time":           {[]string{"America/Chicago"}},
	"Mountain Standard Time (Mexico)": {[]string{"America/Chihuahua"}},
	"Central Brazilian Standard Time": {[]string{"America/Cuiaba"}},
	"Mountain Standard Time":          {[]string{"America/Denver"}},
	"Greenland Standard Time":         {[]string{"America/Godthab"}},
	"Turks And Caicos Standard Time":  {[]string{"America/Grand_Turk"}},
	"Central America Standard Time":   {[]string{"America/Guatemala"}},
	"Atlantic Standard Time":          {[]string{"America/Halifax"}},
	"Cuba Standard Time":              {[]string{"America/Havana"}},
	"US Eastern Standard Time":        {[]string{"America/Indianapolis"}},
	"SA Western Standard Time":        {[]string{"America/La_Paz"}},
	"Pacific Standard Time":           {[]string{"America/Los_Angeles"}},
	"Central Standard Time (Mexico)":  {[]string{"America/Mexico_City"}},
	"Saint Pierre Standard Time":      {[]string{"America/Miquelon"}},
	"Montevideo Standard Time":        {[]string{"America/Montevideo"}},
	"Eastern Standard Time":           {[]string{"America/New_York"}},
	"US Mountain Standard Time":       {[]string{"America/Phoenix"}},
	"Haiti Standard Time":             {[]string{"America/Port-au-Prince"}},
	"Canada Central Standard Time":    {[]string{"America/Regina"}},
	"Pacific SA Standard Time":        {[]string{"America/Santiago"}},
	"E. South America Standard Time":  {[]string{"America/Sao_Paulo"}},
	"Newfoundland Standard Time":      {[]string{"America/St_Johns"}},
	"Pacific Standard Time (Mexico)":  {[]string{"America/Tijuana"}},

	"Central Asia Standard Time":    {[]string{"Asia/Almaty"}},
	"Jordan Standard Time":          {[]string{"Asia/Amman"}},
	"Arabic Standard Time":          {[]string{"Asia/Baghdad"}},
	"Azerbaijan Standard Time":      {[]string{"Asia/Baku"}},
	"SE Asia Standard Time":         {[]string{"Asia/Bangkok"}},
	"Middle East Standard Time":     {[]string{"Asia/Beirut"}},
	"India Standard Time":           {[]string{"Asia/Calcutta"}},
	"Sri Lanka Standard Time":       {[]string{"Asia/Colombo"}},
	"Syria Standard Time":           {[]string{"Asia/Damascus"}},
	"Bangladesh Standard Time":      {[]string{"Asia/Dhaka"}},
	"Arabian Standard Time":         {[]string{"Asia/Dubai"}},
	"West Bank Standard Time":       {[]string{"Asia/Hebron"}},
	"Israel Standard Time":          {[]string{"Asia/Jerusalem"}},
	"Afghanistan Standard Time":     {[]string{"Asia/Kabul"}},
	"Pakistan Standard Time":        {[]string{"Asia/Karachi"}},
	"Nepal Standard Time":           {[]string{"Asia/Katmandu"}},
	"North Asia Standard Time":      {[]string{"Asia/Krasnoyarsk"}},
	"Myanmar Standard Time":         {[]string{"Asia/Rangoon"}},
	"Arab Standard Time":            {[]string{"Asia/Riyadh"}},
	"Korea Standard Time":           {[]string{"Asia/Seoul"}},
	"China Standard Time":           {[]string{"Asia/Shanghai"}},
	"Singapore Standard Time":       {[]string{"Asia/Singapore"}},
	"Taipei Standard Time":          {[]string{"Asia/Taipei"}},
	"West Asia Standard Time":       {[]string{"Asia/Tashkent"}},
	"Georgian Standard Time":        {[]string{"Asia/Tbilisi"}},
	"Iran Standard Time":            {[]string{"Asia/Tehran"}},
	"Tokyo Standard Time":           {[]string{"Asia/Tokyo"}},
	"Ulaanbaatar Standard Time":     {[]string{"Asia/Ulaanbaatar"}},
	"Vladivostok Standard Time":     {[]string{"Asia/Vladivostok"}},
	"Yakutsk Standard Time":         {[]string{"Asia/Yakutsk"}},
	"Ekaterinburg Standard Time":    {[]string{"Asia/Yekaterinburg"}},
	"Caucasus Standard Time":        {[]string{"Asia/Yerevan"}},

	"Azores Standard Time":     {[]string{"Atlantic/Azores"}},
	"Cape Verde Standard Time": {[]string{"Atlantic/Cape_Verde"}},
	"Greenwich Standard Time":  {[]string{"Atlantic/Reykjavik"}},

	"Cen. Australia Standard Time": {[]string{"Australia/Adelaide"}},
	"E. Australia Standard Time":   {[]string{"Australia/Brisbane"}},
	"AUS Central Standard Time":    {[]string{"Australia/Darwin"}},
	"Tasmania Standard Time":       {[]string{"Australia/Hobart"}},
	"Lord Howe Standard Time":      {[]string{"Australia/Lord_Howe"}},
	"W. Australia Standard Time":   {[]string{"Australia/Perth"}},
	"AUS Eastern Standard Time":    {[]string{"Australia/Sydney"}},

	"W. Europe Standard Time":        {[]string{"Europe/Berlin", "Europe/Amsterdam", "Europe/Rome", "Europe/Vienna"}},
	"GTB Standard Time":              {[]string{"Europe/Bucharest"}},
	"Central Europe Standard Time":   {[]string{"Europe/Budapest"}},
	"E. Europe Standard Time":        {[]string{"Europe/Chisinau"}},
	"Turkey Standard Time":           {[]string{"Europe/Istanbul"}},
	"Kaliningrad Standard Time":      {[]string{"Europe/Kaliningrad"}},
	"FLE Standard Time":              {[]string{"Europe/Kiev"}},
	"GMT Standard Time":              {[]string{"Europe/London", "Europe/Dublin"}},
	"Belarus Standard Time":          {[]string{"Europe/Minsk"}},
	"Russian Standard Time":          {[]string{"Europe/Moscow"}},
	"Romance Standard Time":          {[]string{"Europe/Paris"}},
	"Central European Standard Time": {[]string{"Europe/Warsaw"}},

	"Mauritius Standard Time":       {[]string{"Indian/Mauritius"}},
	"Samoa Standard Time":           {[]string{"Pacific/Apia"}},
	"New Zealand Standard Time":     {[]string{"Pacific/Auckland"}},
	"Bougainville Standard Time":    {[]string{"Pacific/Bougainville"}},
	"Chatham Islands Standard Time": {[]string{"Pacific/Chatham"}},
	"Easter Island Standard Time":   {[]string{"Pacific/Easter"}},
	"Fiji Standard Time":            {[]string{"Pacific/Fiji"}},
	"Central Pacific Standard Time": {[]string{"Pacific/Guadalcanal"}},
	"Hawaiian Standard Time":        {[]string{"Pacific/Honolulu"}},
	"Line Islands Standard Time":    {[]string{"Pacific/Kiritimati"}},
	"Marquesas Standard Time":       {[]string{"Pacific/Marquesas"}},
	"Norfolk Standard Time":         {[]string{"Pacific/Norfolk"}},
	"West Pacific Standard Time":    {[]string{"Pacific/Port_Moresby"}},
	"Tonga Standard Time":           {[]string{"Pacific/Tongatapu"}},

	"UTC":                    {[]string{"Etc/GMT"}},
	"UTC-11":                 {[]string{"Etc/GMT+11"}},
	"Dateline Standard Time": {[]string{"Etc/GMT+12"}},
	"UTC-02":                 {[]string{"Etc/GMT+2"}},
	"UTC-08":                 {[]string{"Etc/GMT+8"}},
	"UTC-09":                 {[]string{"Etc/GMT+9"}},
	"UTC+12":                 {[]string{"Etc/GMT-12"}},
	"UTC+13":                 {[]string{"Etc/GMT-13"}},
}
