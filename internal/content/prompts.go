package content

import (
	"fmt"

	"dil-avcilari/internal/game"
)

func levelDescription(difficulty game.Difficulty) string {
	switch difficulty {
	case game.DifficultyExpert:
		return "C1 (Advanced - Soyut)"
	case game.DifficultyHard:
		return "B2 (Upper Int - Karmaşık)"
	default:
		return "A1-A2 (Beginner - Somut)"
	}
}

func round1TaskPrompt(language string, difficulty game.Difficulty) string {
	return fmt.Sprintf(`Sen 'DİL AVCILARI' yarışmasının sert ama adil sunucususun.
Hedef Dil: %s
Seviye: %s

1. Tur için ÇOK KISA (maksimum 10 kelime), ANLIK YAPILABİLİR bir sözlü görev ver.
Uzun cümleler kurma. Oyuncu okuduğu an ne yapacağını anlamalı.

Örnekler:
- "Masanın üzerindeki 3 nesneyi say."
- "Bana 'Seni seviyorum' de."
- "10'dan geriye say."

Çıktı Formatı:
[Sadece Görev Metni]
`, language, difficulty)
}

func penaltyPrompt(language string) string {
	return fmt.Sprintf(`Hedef Dil: %s
Kısa, komik ve utandırmayan bir ceza ver. Tek cümle.
Örnek: "Bir sonraki tura kadar kedi gibi miyavla."
`, language)
}

func luckFlavorPrompt(kind game.LuckKind) string {
	return fmt.Sprintf(`Bir yarışma oyununda oyuncu '%s' kazandı.
Bunu kutlayan, motive edici, çok kısa (tek cümle) havalı bir tebrik mesajı yaz.
Sadece mesajı yaz.
`, kind)
}

func colorTaskPrompt(color, language string, difficulty game.Difficulty) string {
	return fmt.Sprintf(`Oyun: 2. Tur (Renkler). Daha zorlayıcı ol.
Renk: %s
Dil: %s
Seviye: %s

Bu rengi içeren bir deyim sor, ya da bu renkle ilgili soyut bir kavramı anlatmasını iste.
Süre kısıtlı, okuması kolay olsun.

Çıktı:
[Sadece Görev]
`, color, language, levelDescription(difficulty))
}

func wrongWordPrompt(language string, difficulty game.Difficulty) string {
	return fmt.Sprintf(`3. Tur. Dil: %s. Zorluk: %s.
5 kelimelik bir cümle yaz. Bir kelime bariz şekilde yanlış (absürt) olsun.

Format:
Cümle: [Cümle]
Soru: Hangi kelime hatalı?
`, language, difficulty)
}

func interviewPrompt(language string, difficulty game.Difficulty) string {
	return fmt.Sprintf(`3. Tur Mülakat. Dil: %s. Zorluk: %s.
Felsefi veya düşündürücü tek bir soru sor.
Örnek: "Mutluluk sence nedir?"
`, language, difficulty)
}

func riddlePrompt(language string) string {
	return fmt.Sprintf(`3. Tur Final Bilmecesi. Dil: %s.
Klasik, zeka gerektiren kısa bir bilmece.
`, language)
}
