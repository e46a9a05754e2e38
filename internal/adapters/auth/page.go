package auth

// ceremonyPage fetches the options, runs navigator.credentials and posts the
// base64url encoded result back to the callback server.
const ceremonyPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>keystamp passkey</title></head>
<body>
<p id="status">Waiting for your passkey...</p>
<script>
const state = new URLSearchParams(location.search).get("state");
const b64 = (buf) => btoa(String.fromCharCode(...new Uint8Array(buf)))
  .replace(/\+/g, "-").replace(/\//g, "_").replace(/=+$/, "");
const unb64 = (s) => Uint8Array.from(
  atob(s.replace(/-/g, "+").replace(/_/g, "/") + "===".slice((s.length + 3) % 4)),
  (c) => c.charCodeAt(0));

async function ceremony() {
  const req = await (await fetch("/passkey/options?state=" + encodeURIComponent(state))).json();
  const o = req.options;
  if (req.kind === "get") {
    const cred = await navigator.credentials.get({publicKey: {
      challenge: unb64(o.challenge),
      rpId: o.rpId,
      timeout: o.timeout,
      userVerification: o.userVerification,
      allowCredentials: (o.allowCredentials || []).map((c) => ({type: c.type, id: unb64(c.id), transports: c.transports})),
    }});
    return {
      id: cred.id,
      authenticatorData: b64(cred.response.authenticatorData),
      clientDataJSON: b64(cred.response.clientDataJSON),
      signature: b64(cred.response.signature),
      userHandle: cred.response.userHandle ? b64(cred.response.userHandle) : "",
    };
  }
  const cred = await navigator.credentials.create({publicKey: {
    challenge: unb64(o.challenge),
    rp: o.rp,
    user: {id: unb64(o.user.id), name: o.user.name, displayName: o.user.displayName},
    pubKeyCredParams: o.pubKeyCredParams,
    timeout: o.timeout,
    authenticatorSelection: {userVerification: o.userVerification},
  }});
  return {
    id: cred.id,
    clientDataJSON: b64(cred.response.clientDataJSON),
    attestationObject: b64(cred.response.attestationObject),
    transports: cred.response.getTransports ? cred.response.getTransports() : [],
  };
}

function report(body) {
  fetch("/passkey/callback?state=" + encodeURIComponent(state), {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(body),
  }).then(() => {
    document.getElementById("status").textContent = body.error
      ? "Passkey failed: " + body.error
      : "Done. You can close this window.";
  });
}

ceremony().then(
  (response) => report({response}),
  (err) => report({error: (err && err.name ? err.name + ": " : "") + (err && err.message ? err.message : String(err))}),
);
</script>
</body>
</html>
`
