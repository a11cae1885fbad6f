package region

type lexiconEntry struct {
	keyword string
	label   Label
}

// districtLexicon covers all 31 kecamatan of Surabaya, keyed lowercase.
// Membership is fixed administrative data, not inferred.
var districtLexicon = []lexiconEntry{
	// Surabaya Pusat
	{"tegalsari", Pusat},
	{"simokerto", Pusat},
	{"genteng", Pusat},
	{"bubutan", Pusat},
	// Surabaya Utara
	{"bulak", Utara},
	{"kenjeran", Utara},
	{"semampir", Utara},
	{"pabean cantian", Utara},
	{"krembangan", Utara},
	// Surabaya Timur
	{"gubeng", Timur},
	{"gunung anyar", Timur},
	{"sukolilo", Timur},
	{"tambaksari", Timur},
	{"mulyorejo", Timur},
	{"rungkut", Timur},
	{"tenggilis mejoyo", Timur},
	// Surabaya Selatan
	{"wonokromo", Selatan},
	{"wonocolo", Selatan},
	{"wiyung", Selatan},
	{"karang pilang", Selatan},
	{"jambangan", Selatan},
	{"gayungan", Selatan},
	{"dukuh pakis", Selatan},
	{"sawahan", Selatan},
	// Surabaya Barat
	{"benowo", Barat},
	{"pakal", Barat},
	{"asemrowo", Barat},
	{"sukomanunggal", Barat},
	{"tandes", Barat},
	{"sambikerep", Barat},
	{"lakarsantri", Barat},
}

// streetLexicon maps well-known streets and landmarks that citizens write
// instead of a district name. Consulted only after the district lexicon.
var streetLexicon = []lexiconEntry{
	{"tunjungan", Pusat},
	{"basuki rahmat", Pusat},
	{"embong malang", Pusat},
	{"pasar turi", Pusat},
	{"kembang jepun", Utara},
	{"tanjung perak", Utara},
	{"ampel", Utara},
	{"kertajaya", Timur},
	{"dharmahusada", Timur},
	{"manyar", Timur},
	{"klampis", Timur},
	{"merr", Timur},
	{"darmo", Selatan},
	{"ahmad yani", Selatan},
	{"diponegoro", Selatan},
	{"mayjen sungkono", Selatan},
	{"citraland", Barat},
	{"pakuwon", Barat},
	{"hr muhammad", Barat},
	{"margomulyo", Barat},
}

type boundingBox struct {
	latMin, latMax float64
	lngMin, lngMax float64
	label          Label
}

// boundingBoxes partitions the city area into coarse zone rectangles.
// Checked in order; the first containing box wins.
var boundingBoxes = []boundingBox{
	{latMin: -7.245, latMax: -7.170, lngMin: 112.680, lngMax: 112.820, label: Utara},
	{latMin: -7.280, latMax: -7.245, lngMin: 112.720, lngMax: 112.760, label: Pusat},
	{latMin: -7.350, latMax: -7.245, lngMin: 112.760, lngMax: 112.850, label: Timur},
	{latMin: -7.360, latMax: -7.280, lngMin: 112.660, lngMax: 112.760, label: Selatan},
	{latMin: -7.330, latMax: -7.170, lngMin: 112.550, lngMax: 112.680, label: Barat},
}
