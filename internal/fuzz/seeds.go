package fuzztests

import (
	"testing"
)

const maxFuzzInput = 1 << 16 // 64 KiB

var seedPrograms = []string{
	"",
	"bowl a = 1;\n",
	"bowl s: strg = \"hi\" + \"there\";\n",
	"blok area[bowl w: flot, bowl h: flot] { bonk w * h; }\nbowl a = @area[w = 2, h = 3];\n",
	"hive point { bowl x: dobl; bowl y: dobl; blok len: dobl { bonk x * x + y * y; } }\nbowl p: point;\nbowl l = @len of p;\n",
	"blok fact[bowl n: nubr] { n < 2 and { bonk 1; }; bonk n * @fact[n = n - 1]; }\n",
	"blok spin { bonk @spin; }\n",
	"bowl xs = [1, 2, 3];\nbowl ys: many flot = xs;\nys += [4];\n",
	"loop { brek; }\nrebonk;\n",
	"help \"missing\";\nbowl a = far;\n",
	"bowl b = 1 as dobl as strg; # comment\n",
	"bowl = ;\n\"unterminated",
	"bowl a = 1 $ 2;\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, src := range seedPrograms {
		f.Add([]byte(src))
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
