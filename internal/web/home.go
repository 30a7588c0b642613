package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(rooms []RoomSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="tr">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Dil Avcıları</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Dil Avcıları</span>
        <h1>Kartı aç, görevi yap, puanı kap.</h1>
        <p>Saniyeler içinde oda kur ya da katılım koduyla bir odaya gir.</p>
      </header>

      <section class="panel">
        <div>
          <h2>Oda kur</h2>
          <p>Yeni bir lobi oluştur ve katılım kodunu oyuncularla paylaş.</p>
        </div>
        <form id="createForm" class="join-form">
          <input name="name" placeholder="Oda adı" autocomplete="off"/>
          <input name="host" placeholder="Yönetici adı" autocomplete="name"/>
          <button type="submit" class="primary">Oda kur</button>
        </form>
        <div id="createResult" class="result"></div>
      </section>

      <section class="panel">
        <div>
          <h2>Odaya katıl</h2>
          <p>Yöneticiden aldığın katılım kodunu ve adını gir.</p>
        </div>
        <form id="joinForm" class="join-form">
          <input name="code" placeholder="Katılım kodu" autocomplete="off" required/>
          <input name="name" placeholder="Oyuncu adı" autocomplete="name" required/>
          <button type="submit" class="secondary">Katıl</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Açık odalar</h2>
        <ul id="roomList" class="room-list">`)
		for _, room := range rooms {
			_, _ = io.WriteString(w, `
          <li><span class="room-name">`)
			_, _ = io.WriteString(w, templEscape(room.Name))
			_, _ = io.WriteString(w, `</span> <code>`)
			_, _ = io.WriteString(w, templEscape(room.JoinCode))
			_, _ = io.WriteString(w, `</code></li>`)
		}
		_, _ = io.WriteString(w, `
        </ul>
      </section>
    </main>

    <script>
      const createForm = document.getElementById("createForm");
      const createResult = document.getElementById("createResult");
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");
      const roomList = document.getElementById("roomList");

      createForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        createResult.textContent = "Oda kuruluyor...";
        const name = createForm.elements.name.value.trim();
        const host = createForm.elements.host.value.trim();
        const res = await fetch("/api/rooms", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ name, host_name: host })
        });
        const data = await res.json();
        if (!res.ok) {
          createResult.textContent = data.error || "Oda kurulamadı.";
          return;
        }
        createResult.textContent = "Oda hazır. Katılım kodu: " + data.join_code;
      });

      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        joinResult.textContent = "Katılınıyor...";
        const code = joinForm.elements.code.value.trim();
        const name = joinForm.elements.name.value.trim();
        const res = await fetch("/api/rooms/" + encodeURIComponent(code) + "/join", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ name })
        });
        const data = await res.json();
        if (!res.ok) {
          joinResult.textContent = data.error || "Odaya katılınamadı.";
          return;
        }
        joinResult.textContent = "Odaya girildi: " + code.toUpperCase();
      });

      const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws/home");
      ws.onmessage = (event) => {
        const data = JSON.parse(event.data);
        if (!data.rooms) return;
        roomList.innerHTML = data.rooms
          .map((room) => "<li><span class=\"room-name\">" + room.name + "</span> <code>" + room.join_code + "</code></li>")
          .join("");
      };
    </script>
  </body>
</html>
`)
		return nil
	})
}

func templEscape(raw string) string {
	return templ.EscapeString(raw)
}
