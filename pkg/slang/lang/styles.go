package lang

// styleHints supplies per-language gaming-slang vocabulary guidance that
// gets spliced into translation prompts. Treated as opaque configuration
// text by everything outside prompt construction.
var styleHints = map[string]string{
	"en": "Use current English gaming and internet slang: gank, diff, cracked, no cap, cooked, touch grass, lowkey, based, clutch, throwing.",
	"zh": "Use Chinese gaming and internet slang: 菜, 带飞, 上分, 开黑, 破防, yyds, 绝绝子, 摆烂, 内卷, 666.",
	"es": "Use Spanish gaming and internet slang: manco, feedear, rushear, tiltearse, crack, bot, gg, tryhard.",
	"pt": "Use Brazilian Portuguese gaming slang: mitar, upar, camperar, lagou, noob, bugado, gankar, é nois.",
	"ja": "Use Japanese gaming and net slang: 神ゲー, 芋る, 沼, エイム神, 初見, 草, ガチ勢, エンジョイ勢.",
	"ko": "Use Korean gaming slang: 캐리, 버스, 트롤, 갱, 딜러, 존버, 현타, 고인물.",
	"fr": "Use French gaming slang: cheaté, rusher, tryhard, noob, rager, carry, être cramé, pgm.",
	"de": "Use German gaming slang: abfarmen, zocken, sweaty, lowbob, carrien, tryharden, rumcampen.",
	"ru": "Use Russian gaming slang: нуб, имба, ганк, фидить, катка, тащер, рак, изи.",
	"vi": "Use Vietnamese gaming slang: gánh team, phá game, tay to, gà, quẩy, ăn hành, leo rank.",
	"th": "Use Thai gaming slang: เกรียน, แบก, โหด, กาก, ตีป้อม, เก็บเวล, สายฟาร์ม.",
	"id": "Use Indonesian gaming slang: gercep, bocil, jago, ngefeed, hoki, epep, push rank, auto win.",
}

const defaultHint = "Use the gaming and internet slang currently popular among young native speakers of the target language."

// Hint returns the slang vocabulary hint for a target language code.
func Hint(code string) string {
	if h, ok := styleHints[code]; ok {
		return h
	}
	return defaultHint
}
